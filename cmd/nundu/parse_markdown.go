package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nundu/internal/api"
	"nundu/internal/models"
	"nundu/internal/sanitize"
)

var listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)

// parseMarkdown splits an optional YAML front matter block from the list
// items that follow it.
func parseMarkdown(input string) (map[string]any, []string, error) {
	frontMatter := map[string]any{}
	content := input

	lines := strings.Split(input, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[0]) == "---" {
		end := -1
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				end = i
				break
			}
		}
		if end == -1 {
			return nil, nil, fmt.Errorf("front matter not closed")
		}
		frontText := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(frontText), &frontMatter); err != nil {
			return nil, nil, err
		}
		content = strings.Join(lines[end+1:], "\n")
	}

	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		match := listItemRegex.FindStringSubmatch(line)
		if len(match) == 2 {
			item := strings.TrimSpace(match[1])
			if item != "" {
				items = append(items, item)
			}
		}
	}

	return frontMatter, items, nil
}

// frontMatterFields maps front matter keys onto schema fields. Keys may be
// written as snake_case or kebab-case; keys outside the schema are skipped.
func frontMatterFields(frontMatter map[string]any, schema sanitize.Schema) map[string]any {
	fields := map[string]any{}
	for key, value := range frontMatter {
		name := fieldName(key)
		if _, ok := schema.Lookup(name); !ok {
			slog.Warn("ignoring front matter key", "key", key)
			continue
		}
		fields[name] = scalarString(value)
	}
	return fields
}

func scalarString(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	case int, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		// Lists and maps are left for the sanitizer to reject.
		return v
	}
}

// loadBatchFile reads a markdown file where each list item becomes one
// record titled by the item, sharing the front matter fields.
func loadBatchFile(path string, entity models.Entity, schema sanitize.Schema) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return buildBatch(string(data), entity, schema)
}

func buildBatch(input string, entity models.Entity, schema sanitize.Schema) ([]map[string]any, error) {
	frontMatter, items, err := parseMarkdown(input)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no list items found")
	}

	primary := schema[0].Name
	shared := frontMatterFields(frontMatter, schema)
	inputs := make([]map[string]any, 0, len(items))
	for i, item := range items {
		fields := make(map[string]any, len(shared)+1)
		for k, v := range shared {
			fields[k] = v
		}
		fields[primary] = item
		applyFormDefaults(entity, fields)

		if err := validateFields(entity, schema, fields); err != nil {
			var fieldErr *fieldErrors
			if errors.As(err, &fieldErr) {
				fieldErr.label = fmt.Sprintf("%s in item %d", fieldErr.label, i+1)
			}
			return nil, err
		}
		inputs = append(inputs, fields)
	}
	return inputs, nil
}

func createBatch(cmd *cobra.Command, client *api.Client, out *outputOptions, entity models.Entity, inputs []map[string]any) error {
	created := make([]models.Record, 0, len(inputs))
	for _, fields := range inputs {
		rec, err := client.Create(cmd.Context(), entity, fields)
		if err != nil {
			return fmt.Errorf("created %d of %d %s: %w", len(created), len(inputs), entity.Name, err)
		}
		created = append(created, rec)
	}

	if out.structured() {
		return out.write(cmd.OutOrStdout(), created)
	}
	for _, rec := range created {
		if err := writePlain(cmd.OutOrStdout(), "%s\n", rec.ID()); err != nil {
			return err
		}
	}
	return nil
}
