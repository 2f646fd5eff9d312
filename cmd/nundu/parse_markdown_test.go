package main

import (
	"errors"
	"testing"

	"nundu/internal/models"
	"nundu/internal/sanitize"
)

func TestParseMarkdown(t *testing.T) {
	input := "---\nsprint: S1\nstart_date: 2026-03-01\n---\n# Heading\n- first\n  * nested\n-   \ntext\n"

	frontMatter, items, err := parseMarkdown(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if frontMatter["sprint"] != "S1" {
		t.Fatalf("unexpected front matter: %v", frontMatter)
	}
	if len(items) != 2 || items[0] != "first" || items[1] != "nested" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestParseMarkdownWithoutFrontMatter(t *testing.T) {
	frontMatter, items, err := parseMarkdown("- one\n- two\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(frontMatter) != 0 || len(items) != 2 {
		t.Fatalf("unexpected result: %v %v", frontMatter, items)
	}
}

func TestParseMarkdownUnclosedFrontMatter(t *testing.T) {
	if _, _, err := parseMarkdown("---\nsprint: S1\n- item\n"); err == nil {
		t.Fatalf("expected error for unclosed front matter")
	}
}

func TestBuildBatchMapsFrontMatter(t *testing.T) {
	input := "---\nstart_date: 2026-03-01\nassigned-to: Ada\nunknown: x\n---\n- one\n"

	inputs, err := buildBatch(input, models.Tasks, sanitize.TaskSchema())
	if err != nil {
		t.Fatalf("build batch: %v", err)
	}
	if len(inputs) != 1 {
		t.Fatalf("expected one input, got %d", len(inputs))
	}
	fields := inputs[0]
	if fields["startDate"] != "2026-03-01" || fields["assignedTo"] != "Ada" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if _, ok := fields["unknown"]; ok {
		t.Fatalf("expected unknown key to be skipped")
	}
	if fields["priority"] != models.PriorityMedium {
		t.Fatalf("expected form default priority, got %v", fields["priority"])
	}
}

func TestBuildBatchReportsItem(t *testing.T) {
	input := "---\nend_date: soon\n---\n- one\n"

	_, err := buildBatch(input, models.Tasks, sanitize.TaskSchema())
	var fieldErr *fieldErrors
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected fieldErrors, got %v", err)
	}
	if fieldErr.label != "task in item 1" {
		t.Fatalf("unexpected label %q", fieldErr.label)
	}
}

func TestBuildBatchRequiresItems(t *testing.T) {
	if _, err := buildBatch("just text\n", models.Tasks, sanitize.TaskSchema()); err == nil {
		t.Fatalf("expected error without list items")
	}
}
