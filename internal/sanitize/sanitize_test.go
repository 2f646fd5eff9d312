package sanitize_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nundu/internal/sanitize"
)

func TestSanitize(t *testing.T) {
	t.Run("accepts string field", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"name": "John"},
			sanitize.Schema{{Name: "name", Kind: sanitize.KindString}},
		)
		require.True(t, res.Accepted())
		assert.Nil(t, res.Errors)
		assert.Equal(t, map[string]any{"name": "John"}, res.Data)
	})

	t.Run("rejects empty required string", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"name": ""},
			sanitize.Schema{{Name: "name", Kind: sanitize.KindString}},
		)
		require.False(t, res.Accepted())
		assert.Nil(t, res.Data)
		assert.Equal(t, "name must be a valid string (max 500 characters)", res.Errors["name"])
	})

	t.Run("rejects missing required string", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{},
			sanitize.Schema{{Name: "name", Kind: sanitize.KindString, MaxLength: 100}},
		)
		require.False(t, res.Accepted())
		assert.Equal(t, "name must be a valid string (max 100 characters)", res.Errors["name"])
	})

	t.Run("enforces max length", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"name": strings.Repeat("a", 100)},
			sanitize.Schema{{Name: "name", Kind: sanitize.KindString, MaxLength: 50}},
		)
		require.False(t, res.Accepted())
		assert.Contains(t, res.Errors, "name")
	})

	t.Run("lower-cases email", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"email": "JOHN@EXAMPLE.COM"},
			sanitize.Schema{{Name: "email", Kind: sanitize.KindEmail}},
		)
		require.True(t, res.Accepted())
		assert.Equal(t, "john@example.com", res.Data["email"])
	})

	t.Run("rejects invalid required email", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"email": "not-an-email"},
			sanitize.Schema{{Name: "email", Kind: sanitize.KindEmail}},
		)
		require.False(t, res.Accepted())
		assert.Equal(t, "email must be a valid email", res.Errors["email"])
	})

	t.Run("rejects empty required email", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"email": ""},
			sanitize.Schema{{Name: "email", Kind: sanitize.KindEmail}},
		)
		require.False(t, res.Accepted())
		assert.Contains(t, res.Errors, "email")
	})

	t.Run("escapes markup", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"title": "<script>"},
			sanitize.Schema{{Name: "title", Kind: sanitize.KindString, MaxLength: 200}},
		)
		require.True(t, res.Accepted())
		assert.Equal(t, "&lt;script&gt;", res.Data["title"])
	})

	t.Run("optional empty date is nil", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"startDate": ""},
			sanitize.Schema{{Name: "startDate", Kind: sanitize.KindDate, Optional: true}},
		)
		require.True(t, res.Accepted())
		v, ok := res.Data["startDate"]
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("required empty date is nil", func(t *testing.T) {
		schema := sanitize.Schema{{Name: "due", Kind: sanitize.KindDate}}
		for _, input := range []map[string]any{{}, {"due": nil}, {"due": ""}} {
			res := sanitize.Sanitize(input, schema)
			require.True(t, res.Accepted(), "input %v", input)
			assert.Nil(t, res.Data["due"])
		}
	})

	t.Run("keeps date verbatim", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"due": "02-18-2026"},
			sanitize.Schema{{Name: "due", Kind: sanitize.KindDate}},
		)
		require.True(t, res.Accepted())
		assert.Equal(t, "02-18-2026", res.Data["due"])
	})

	t.Run("rejects unparseable date", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"due": "someday"},
			sanitize.Schema{{Name: "due", Kind: sanitize.KindDate, Optional: true}},
		)
		require.False(t, res.Accepted())
		assert.Equal(t, "due must be a valid date (ISO 8601)", res.Errors["due"])
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		schema := sanitize.Schema{
			{Name: "name", Kind: sanitize.KindString},
			{Name: "email", Kind: sanitize.KindEmail},
			{Name: "due", Kind: sanitize.KindDate},
		}
		res := sanitize.Sanitize(map[string]any{"name": 12, "email": true, "due": 20260218.0}, schema)
		require.False(t, res.Accepted())
		assert.Len(t, res.Errors, 3)
	})

	t.Run("optional blank fields skip validation", func(t *testing.T) {
		schema := sanitize.Schema{
			{Name: "name", Kind: sanitize.KindString},
			{Name: "role", Kind: sanitize.KindString, Optional: true},
			{Name: "backup", Kind: sanitize.KindEmail, Optional: true},
		}
		res := sanitize.Sanitize(map[string]any{"name": "Ada", "role": "", "backup": nil}, schema)
		require.True(t, res.Accepted())
		assert.Equal(t, map[string]any{"name": "Ada", "role": nil, "backup": nil}, res.Data)
	})

	t.Run("optional whitespace string is rejected", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"role": "   "},
			sanitize.Schema{{Name: "role", Kind: sanitize.KindString, Optional: true}},
		)
		require.False(t, res.Accepted())
		assert.Contains(t, res.Errors, "role")
	})

	t.Run("drops unknown fields", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"name": "John", "isAdmin": true, "id": "forged"},
			sanitize.Schema{{Name: "name", Kind: sanitize.KindString}},
		)
		require.True(t, res.Accepted())
		assert.Equal(t, map[string]any{"name": "John"}, res.Data)
	})

	t.Run("no partial acceptance", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"name": "John", "email": "bad"},
			sanitize.DeveloperSchema(),
		)
		require.False(t, res.Accepted())
		assert.Nil(t, res.Data)
		assert.Equal(t, map[string]string{"email": "email must be a valid email"}, res.Errors)
	})

	t.Run("accepts multiple fields", func(t *testing.T) {
		res := sanitize.Sanitize(
			map[string]any{"name": "John", "email": "john@example.com", "description": "Developer"},
			sanitize.Schema{
				{Name: "name", Kind: sanitize.KindString, MaxLength: 100},
				{Name: "email", Kind: sanitize.KindEmail},
				{Name: "description", Kind: sanitize.KindString, MaxLength: 500},
			},
		)
		require.True(t, res.Accepted())
		assert.Equal(t, "John", res.Data["name"])
		assert.Equal(t, "john@example.com", res.Data["email"])
		assert.Equal(t, "Developer", res.Data["description"])
	})
}

func TestSanitizeEntitySchemas(t *testing.T) {
	t.Run("task", func(t *testing.T) {
		res := sanitize.Sanitize(map[string]any{
			"title":     " Fix <login> ",
			"priority":  "High",
			"state":     "in-progress",
			"startDate": "2026-02-18",
			"endDate":   "",
		}, sanitize.TaskSchema())
		require.True(t, res.Accepted())
		assert.Equal(t, "Fix &lt;login&gt;", res.Data["title"])
		assert.Equal(t, "High", res.Data["priority"])
		assert.Equal(t, "2026-02-18", res.Data["startDate"])
		assert.Nil(t, res.Data["endDate"])
		assert.Nil(t, res.Data["description"])
		assert.Len(t, res.Data, 8)
	})

	t.Run("task title required", func(t *testing.T) {
		res := sanitize.Sanitize(map[string]any{"priority": "Low"}, sanitize.TaskSchema())
		require.False(t, res.Accepted())
		assert.Equal(t, "title must be a valid string (max 200 characters)", res.Errors["title"])
	})

	t.Run("developer", func(t *testing.T) {
		res := sanitize.Sanitize(map[string]any{"name": "Ada", "email": "Ada@Example.com"}, sanitize.DeveloperSchema())
		require.True(t, res.Accepted())
		assert.Equal(t, map[string]any{"name": "Ada", "email": "ada@example.com", "role": nil}, res.Data)
	})

	t.Run("sprint", func(t *testing.T) {
		res := sanitize.Sanitize(map[string]any{"name": "Sprint 1", "status": "active"}, sanitize.SprintSchema())
		require.True(t, res.Accepted())
		assert.Equal(t, "Sprint 1", res.Data["name"])
		assert.Equal(t, "active", res.Data["status"])
		assert.Nil(t, res.Data["startDate"])
	})
}

func TestSanitizeConcurrent(t *testing.T) {
	schema := sanitize.TaskSchema()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := sanitize.Sanitize(map[string]any{"title": "<b>x</b>"}, schema)
			assert.Equal(t, "&lt;b&gt;x&lt;&#x2F;b&gt;", res.Data["title"])
		}()
	}
	wg.Wait()
}

func TestResultSummary(t *testing.T) {
	res := sanitize.Sanitize(map[string]any{}, sanitize.DeveloperSchema())
	require.False(t, res.Accepted())
	assert.Equal(t,
		"email must be a valid email; name must be a valid string (max 100 characters)",
		res.Summary(),
	)
	assert.Empty(t, sanitize.Sanitize(map[string]any{"name": "x", "email": "x@y.z"}, sanitize.DeveloperSchema()).Summary())
}
