package models

import "fmt"

// Entity describes one persisted record collection.
type Entity struct {
	// Name is the plural collection name used in paths and file names.
	Name string
	// Label is the capitalized singular used in messages.
	Label string
	// Defaults fill fields left empty on create.
	Defaults map[string]string
}

var (
	Tasks = Entity{
		Name:  "tasks",
		Label: "Task",
		Defaults: map[string]string{
			"state":  string(StateToDo),
			"sprint": BacklogSprint,
		},
	}
	Developers = Entity{
		Name:  "developers",
		Label: "Developer",
	}
	Sprints = Entity{
		Name:  "sprints",
		Label: "Sprint",
		Defaults: map[string]string{
			"status": string(SprintPlanning),
		},
	}
)

// Entities lists every collection in a stable order.
func Entities() []Entity {
	return []Entity{Tasks, Developers, Sprints}
}

// EntityByName resolves a plural or singular collection name.
func EntityByName(name string) (Entity, error) {
	switch name {
	case Tasks.Name, "task":
		return Tasks, nil
	case Developers.Name, "developer":
		return Developers, nil
	case Sprints.Name, "sprint":
		return Sprints, nil
	default:
		return Entity{}, fmt.Errorf("unknown entity: %s", name)
	}
}

// ApplyDefaults sets default values for fields that are missing or nil.
func (e Entity) ApplyDefaults(r Record) {
	for field, value := range e.Defaults {
		if v, ok := r[field]; !ok || v == nil || v == "" {
			r[field] = value
		}
	}
}
