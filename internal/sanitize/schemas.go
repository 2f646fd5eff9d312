package sanitize

import "fmt"

// Entity kinds as they appear in API paths.
const (
	EntityTasks      = "tasks"
	EntityDevelopers = "developers"
	EntitySprints    = "sprints"
)

// TaskSchema returns the accepted task fields.
func TaskSchema() Schema {
	return Schema{
		{Name: "title", Kind: KindString, MaxLength: 200},
		{Name: "description", Kind: KindString, MaxLength: 1000, Optional: true},
		{Name: "priority", Kind: KindString, MaxLength: 20, Optional: true},
		{Name: "assignedTo", Kind: KindString, MaxLength: 100, Optional: true},
		{Name: "sprint", Kind: KindString, MaxLength: 100, Optional: true},
		{Name: "state", Kind: KindString, MaxLength: 50, Optional: true},
		{Name: "startDate", Kind: KindDate, Optional: true},
		{Name: "endDate", Kind: KindDate, Optional: true},
	}
}

// DeveloperSchema returns the accepted developer fields.
func DeveloperSchema() Schema {
	return Schema{
		{Name: "name", Kind: KindString, MaxLength: 100},
		{Name: "email", Kind: KindEmail},
		{Name: "role", Kind: KindString, MaxLength: 100, Optional: true},
	}
}

// SprintSchema returns the accepted sprint fields.
func SprintSchema() Schema {
	return Schema{
		{Name: "name", Kind: KindString, MaxLength: 100},
		{Name: "startDate", Kind: KindDate, Optional: true},
		{Name: "endDate", Kind: KindDate, Optional: true},
		{Name: "status", Kind: KindString, MaxLength: 50, Optional: true},
	}
}

// SchemaFor returns the schema for an entity kind ("tasks", "developers",
// "sprints"). Singular names are accepted too.
func SchemaFor(entity string) (Schema, error) {
	switch entity {
	case EntityTasks, "task":
		return TaskSchema(), nil
	case EntityDevelopers, "developer":
		return DeveloperSchema(), nil
	case EntitySprints, "sprint":
		return SprintSchema(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
}
