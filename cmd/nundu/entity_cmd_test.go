package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nundu/internal/config"
	"nundu/internal/models"
	"nundu/internal/server"
	"nundu/internal/store"
)

func newCLITestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("NUNDU_LOG_LEVEL", "")

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New("127.0.0.1:0", st, server.Options{Storage: store.BackendJSON}, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := config.Default()
	cfg.APIURL = ts.URL
	return &cfg
}

func runCLI(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRunCLI(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	out, err := runCLI(t, cfg, "", args...)
	if err != nil {
		t.Fatalf("nundu %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func decodeRecord(t *testing.T, out string) models.Record {
	t.Helper()
	var rec models.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode record: %v\n%s", err, out)
	}
	return rec
}

func TestTaskCreateAppliesDefaults(t *testing.T) {
	cfg := newCLITestConfig(t)

	rec := decodeRecord(t, mustRunCLI(t, cfg, "task", "create", "Write", "docs", "--json"))
	if rec.String("title") != "Write docs" {
		t.Fatalf("expected joined title, got %q", rec.String("title"))
	}
	if rec.String("priority") != models.PriorityMedium {
		t.Fatalf("expected form default priority, got %q", rec.String("priority"))
	}
	if rec.String("state") != string(models.StateToDo) || rec.String("sprint") != models.BacklogSprint {
		t.Fatalf("expected server defaults, got state=%q sprint=%q", rec.String("state"), rec.String("sprint"))
	}
	if rec.String("createdAt") == "" {
		t.Fatalf("expected createdAt")
	}
}

func TestTaskCreateEscapesOnce(t *testing.T) {
	cfg := newCLITestConfig(t)

	rec := decodeRecord(t, mustRunCLI(t, cfg, "task", "create", "<b>bold</b> & co", "--json"))
	if got, want := rec.String("title"), "&lt;b&gt;bold&lt;&#x2F;b&gt; &amp; co"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	out := mustRunCLI(t, cfg, "task", "show", rec.ID())
	if !strings.Contains(out, "title: <b>bold</b> & co") {
		t.Fatalf("expected unescaped title in show output, got:\n%s", out)
	}
}

func TestDeveloperCreateRejectsInvalidEmailLocally(t *testing.T) {
	cfg := newCLITestConfig(t)

	_, err := runCLI(t, cfg, "", "developer", "create", "Ada", "--email", "not-an-email")
	var fieldErr *fieldErrors
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected fieldErrors, got %v", err)
	}
	if fieldErr.label != "developer" {
		t.Fatalf("unexpected label %q", fieldErr.label)
	}
	if _, ok := fieldErr.Errors["email"]; !ok {
		t.Fatalf("expected email error, got %v", fieldErr.Errors)
	}

	out := mustRunCLI(t, cfg, "developer", "list", "--json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected no developers stored, got %s", out)
	}
}

func TestDeveloperCreateDefaultsRole(t *testing.T) {
	cfg := newCLITestConfig(t)

	rec := decodeRecord(t, mustRunCLI(t, cfg, "developer", "create", "Ada", "--email", "Ada@Example.com", "--json"))
	if rec.String("role") != "Developer" {
		t.Fatalf("expected default role, got %q", rec.String("role"))
	}
	if rec.String("email") != "ada@example.com" {
		t.Fatalf("expected lower-cased email, got %q", rec.String("email"))
	}
}

func TestSprintUpdateIsPartial(t *testing.T) {
	cfg := newCLITestConfig(t)

	created := decodeRecord(t, mustRunCLI(t, cfg, "sprint", "create", "Sprint 1", "--start-date", "2026-03-01", "--json"))
	if created.String("status") != string(models.SprintPlanning) {
		t.Fatalf("expected planning status, got %q", created.String("status"))
	}

	mustRunCLI(t, cfg, "sprint", "update", created.ID(), "--status", "active")

	shown := decodeRecord(t, mustRunCLI(t, cfg, "sprint", "show", created.ID(), "--json"))
	if shown.String("status") != "active" {
		t.Fatalf("expected active, got %q", shown.String("status"))
	}
	if shown.String("name") != "Sprint 1" || shown.String("startDate") != "2026-03-01" {
		t.Fatalf("expected untouched fields to survive, got %v", shown)
	}
	if shown.String("updatedAt") == "" {
		t.Fatalf("expected updatedAt after update")
	}
}

func TestUpdateRequiresAField(t *testing.T) {
	cfg := newCLITestConfig(t)

	_, err := runCLI(t, cfg, "", "task", "update", "3f0c9d4e-8f7a-4b71-9d55-2f0a6c1e9b10")
	if err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Fatalf("expected nothing-to-update error, got %v", err)
	}
	if !strings.Contains(err.Error(), "--title, --description") || !strings.Contains(err.Error(), "--end-date") {
		t.Fatalf("expected the task field flags to be listed, got %v", err)
	}
}

func TestUpdateValidatesOnlySentFields(t *testing.T) {
	cfg := newCLITestConfig(t)
	created := decodeRecord(t, mustRunCLI(t, cfg, "task", "create", "Ship", "--json"))

	_, err := runCLI(t, cfg, "", "task", "update", created.ID(), "--end-date", "someday")
	var fieldErr *fieldErrors
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected fieldErrors, got %v", err)
	}
	if len(fieldErr.Errors) != 1 || fieldErr.Errors["endDate"] == "" {
		t.Fatalf("expected only endDate error, got %v", fieldErr.Errors)
	}
}

func TestDeletePrintsMessage(t *testing.T) {
	cfg := newCLITestConfig(t)
	created := decodeRecord(t, mustRunCLI(t, cfg, "sprint", "create", "Old", "--json"))

	out := mustRunCLI(t, cfg, "sprint", "delete", created.ID())
	if strings.TrimSpace(out) != "Sprint deleted successfully" {
		t.Fatalf("unexpected delete output %q", out)
	}

	_, err := runCLI(t, cfg, "", "sprint", "show", created.ID())
	if err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestTaskListFilters(t *testing.T) {
	cfg := newCLITestConfig(t)
	mustRunCLI(t, cfg, "task", "create", "A", "--state", "done")
	mustRunCLI(t, cfg, "task", "create", "B")
	mustRunCLI(t, cfg, "task", "create", "C", "--state", "in-progress")

	var records []models.Record
	out := mustRunCLI(t, cfg, "task", "list", "--state", "done,in-progress", "--json")
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 2 || records[0].String("title") != "A" || records[1].String("title") != "C" {
		t.Fatalf("unexpected filtered list: %v", records)
	}

	out = mustRunCLI(t, cfg, "task", "list", "--limit", "1", "--offset", "1")
	if !strings.Contains(out, "[to-do] B (Medium)") || strings.Count(out, "\n") != 1 {
		t.Fatalf("unexpected paged output:\n%s", out)
	}
}

func TestBuildListQuery(t *testing.T) {
	query, err := buildListQuery(models.Sprints, map[string]any{"status": " Active ,custom", "name": "  "}, 5, 0)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query.Get("status") != "active,custom" {
		t.Fatalf("expected normalized statuses, got %q", query.Get("status"))
	}
	if query.Has("name") {
		t.Fatalf("expected blank filter to be dropped")
	}
	if query.Get("limit") != "5" || query.Has("offset") {
		t.Fatalf("unexpected paging params: %v", query)
	}

	if _, err := buildListQuery(models.Tasks, nil, -1, 0); err == nil {
		t.Fatalf("expected negative limit to fail")
	}
}

func TestTaskCreateFromFile(t *testing.T) {
	cfg := newCLITestConfig(t)
	path := filepath.Join(t.TempDir(), "tasks.md")
	content := "---\nsprint: Sprint 1\nassigned_to: Ada\npriority: High\n---\n- Draft changelog\n* Tag release\nnot an item\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	out := mustRunCLI(t, cfg, "task", "create", "-f", path, "--json")
	var records []models.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode batch: %v\n%s", err, out)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(records))
	}
	for i, title := range []string{"Draft changelog", "Tag release"} {
		rec := records[i]
		if rec.String("title") != title || rec.String("sprint") != "Sprint 1" || rec.String("assignedTo") != "Ada" || rec.String("priority") != "High" {
			t.Fatalf("unexpected record %d: %v", i, rec)
		}
	}
}
