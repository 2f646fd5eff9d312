package main

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"nundu/internal/format"
	"nundu/internal/models"
)

// outputOptions carries the global --json/--yaml flags.
type outputOptions struct {
	json bool
	yaml bool
}

func (o *outputOptions) structured() bool {
	return o != nil && (o.json || o.yaml)
}

func (o *outputOptions) formatter() format.Formatter {
	if o != nil && o.yaml {
		return format.YAMLFormatter{}
	}
	return format.JSONFormatter{Indent: true}
}

// write prints payload with the selected structured formatter.
func (o *outputOptions) write(w io.Writer, payload any) error {
	return o.formatter().Write(w, payload)
}

func writePlain(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeRecordList(w io.Writer, entity models.Entity, records []models.Record) error {
	for _, rec := range records {
		line, err := formatRecordLine(entity, rec)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatRecordLine renders a one-line summary. Stored strings are HTML
// escaped; the terminal shows them unescaped.
func formatRecordLine(entity models.Entity, rec models.Record) (string, error) {
	switch entity.Name {
	case models.Tasks.Name:
		task, err := models.Decode[models.Task](rec)
		if err != nil {
			return "", err
		}
		line := fmt.Sprintf("○ %s [%s] %s", task.ID, task.State, display(task.Title))
		if task.Priority != "" {
			line += fmt.Sprintf(" (%s)", display(task.Priority))
		}
		if task.AssignedTo != "" {
			line += " @" + display(task.AssignedTo)
		}
		return line, nil
	case models.Developers.Name:
		dev, err := models.Decode[models.Developer](rec)
		if err != nil {
			return "", err
		}
		line := fmt.Sprintf("%s %s <%s>", dev.ID, display(dev.Name), dev.Email)
		if dev.Role != "" {
			line += " " + display(dev.Role)
		}
		return line, nil
	case models.Sprints.Name:
		sprint, err := models.Decode[models.Sprint](rec)
		if err != nil {
			return "", err
		}
		line := fmt.Sprintf("%s [%s] %s", sprint.ID, sprint.Status, display(sprint.Name))
		if sprint.StartDate != "" || sprint.EndDate != "" {
			line += fmt.Sprintf(" %s..%s", sprint.StartDate, sprint.EndDate)
		}
		return line, nil
	default:
		return rec.ID(), nil
	}
}

// writeRecordDetail prints id first, then the remaining fields sorted by key.
func writeRecordDetail(w io.Writer, rec models.Record) error {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		if key != "id" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	lines := []string{fmt.Sprintf("id: %s", rec.ID())}
	for _, key := range keys {
		value, ok := rec[key].(string)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", key, display(value)))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func display(value string) string {
	return html.UnescapeString(value)
}
