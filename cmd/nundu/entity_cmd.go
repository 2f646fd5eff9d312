package main

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nundu/internal/api"
	"nundu/internal/config"
	"nundu/internal/models"
	"nundu/internal/sanitize"
)

// formDefaults are filled in on create when the matching flag is unset.
var formDefaults = map[string]map[string]string{
	models.Tasks.Name:      {"priority": models.PriorityMedium},
	models.Developers.Name: {"role": "Developer"},
}

// fieldFlags binds one string flag per schema field.
type fieldFlags struct {
	schema sanitize.Schema
	values map[string]*string
}

func bindFieldFlags(cmd *cobra.Command, schema sanitize.Schema, skip string) *fieldFlags {
	ff := &fieldFlags{schema: schema, values: map[string]*string{}}
	for _, field := range schema {
		if field.Name == skip {
			continue
		}
		value := new(string)
		ff.values[field.Name] = value
		cmd.Flags().StringVar(value, flagName(field.Name), "", fieldUsage(field))
	}
	return ff
}

// fieldFlagList renders the schema as "--a, --b" in field order.
func fieldFlagList(schema sanitize.Schema) string {
	names := schema.Names()
	for i, name := range names {
		names[i] = "--" + flagName(name)
	}
	return strings.Join(names, ", ")
}

func fieldUsage(field sanitize.Field) string {
	switch field.Kind {
	case sanitize.KindEmail:
		return field.Name + " (email address)"
	case sanitize.KindDate:
		return field.Name + " (YYYY-MM-DD)"
	default:
		return field.Name
	}
}

// changed returns the values of flags set on the command line.
func (ff *fieldFlags) changed(cmd *cobra.Command) map[string]any {
	fields := map[string]any{}
	for name, value := range ff.values {
		if cmd.Flags().Changed(flagName(name)) {
			fields[name] = *value
		}
	}
	return fields
}

func newEntityCmd(cfg *config.Config, out *outputOptions, entity models.Entity) *cobra.Command {
	schema, err := sanitize.SchemaFor(entity.Name)
	if err != nil {
		panic(err)
	}
	singular := strings.ToLower(entity.Label)

	cmd := &cobra.Command{
		Use:     singular,
		Aliases: []string{entity.Name},
		Short:   "Manage " + entity.Name,
	}

	cmd.AddCommand(
		newEntityCreateCmd(cfg, out, entity, schema),
		newEntityListCmd(cfg, out, entity, schema),
		newEntityShowCmd(cfg, out, entity),
		newEntityUpdateCmd(cfg, out, entity, schema),
		newEntityDeleteCmd(cfg, out, entity),
	)
	return cmd
}

func newEntityCreateCmd(cfg *config.Config, out *outputOptions, entity models.Entity, schema sanitize.Schema) *cobra.Command {
	primary := schema[0].Name
	var filePath string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("create <%s>", primary),
		Short: "Create a " + strings.ToLower(entity.Label),
	}
	flags := bindFieldFlags(cmd, schema, primary)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if filePath != "" {
			if len(args) > 0 {
				return fmt.Errorf("%s argument cannot be combined with --file", primary)
			}
			inputs, err := loadBatchFile(filePath, entity, schema)
			if err != nil {
				return err
			}
			return withClient(cmd.Context(), cfg, func(client *api.Client) error {
				return createBatch(cmd, client, out, entity, inputs)
			})
		}

		if len(args) == 0 {
			return fmt.Errorf("%s is required", primary)
		}
		fields := flags.changed(cmd)
		fields[primary] = strings.Join(args, " ")
		applyFormDefaults(entity, fields)

		if err := validateFields(entity, schema, fields); err != nil {
			return err
		}

		return withClient(cmd.Context(), cfg, func(client *api.Client) error {
			rec, err := client.Create(cmd.Context(), entity, fields)
			if err != nil {
				return err
			}
			if out.structured() {
				return out.write(cmd.OutOrStdout(), rec)
			}
			return writePlain(cmd.OutOrStdout(), "%s\n", rec.ID())
		})
	}

	if entity.Name == models.Tasks.Name {
		cmd.Flags().StringVarP(&filePath, "file", "f", "", "create tasks from a markdown list")
	}
	return cmd
}

func applyFormDefaults(entity models.Entity, fields map[string]any) {
	for name, value := range formDefaults[entity.Name] {
		if _, ok := fields[name]; !ok {
			fields[name] = value
		}
	}
}

// validateFields runs the sanitizer locally. The raw fields are what gets
// sent; the server escapes them.
func validateFields(entity models.Entity, schema sanitize.Schema, fields map[string]any) error {
	result := sanitize.Sanitize(fields, schema)
	if result.Accepted() {
		return nil
	}
	return &fieldErrors{label: strings.ToLower(entity.Label), Result: result}
}

func newEntityListCmd(cfg *config.Config, out *outputOptions, entity models.Entity, schema sanitize.Schema) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + entity.Name,
		Args:  cobra.NoArgs,
	}
	flags := bindFieldFlags(cmd, schema, "")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		query, err := buildListQuery(entity, flags.changed(cmd), limit, offset)
		if err != nil {
			return err
		}
		return withClient(cmd.Context(), cfg, func(client *api.Client) error {
			records, err := client.List(cmd.Context(), entity, query)
			if err != nil {
				return err
			}
			if out.structured() {
				return out.write(cmd.OutOrStdout(), records)
			}
			return writeRecordList(cmd.OutOrStdout(), entity, records)
		})
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many results")
	return cmd
}

// buildListQuery turns filter flags into query parameters. Filters accept
// comma separated alternatives.
func buildListQuery(entity models.Entity, filters map[string]any, limit, offset int) (url.Values, error) {
	if limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	if offset < 0 {
		return nil, errors.New("offset must be >= 0")
	}

	query := url.Values{}
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, _ := filters[name].(string)
		if entity.Name == models.Sprints.Name && name == "status" {
			value = normalizeStatuses(value)
		}
		setIfNotEmpty(query, name, value)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	return query, nil
}

// normalizeStatuses lower-cases known sprint statuses and keeps custom ones.
func normalizeStatuses(raw string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if status, err := models.ParseSprintStatus(part); err == nil {
			part = string(status)
		}
		out = append(out, part)
	}
	return strings.Join(out, ",")
}

func newEntityShowCmd(cfg *config.Config, out *outputOptions, entity models.Entity) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a " + strings.ToLower(entity.Label),
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), cfg, func(client *api.Client) error {
				rec, err := client.Get(cmd.Context(), entity, args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(cmd.OutOrStdout(), rec)
				}
				return writeRecordDetail(cmd.OutOrStdout(), rec)
			})
		},
	}
}

func newEntityUpdateCmd(cfg *config.Config, out *outputOptions, entity models.Entity, schema sanitize.Schema) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a " + strings.ToLower(entity.Label),
		Args:  requireID,
	}
	flags := bindFieldFlags(cmd, schema, "")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		fields := flags.changed(cmd)
		if len(fields) == 0 {
			return fmt.Errorf("nothing to update; pass at least one of %s", fieldFlagList(schema))
		}
		sent := make([]string, 0, len(fields))
		for name := range fields {
			sent = append(sent, name)
		}
		if err := validateFields(entity, schema.Pick(sent...), fields); err != nil {
			return err
		}

		return withClient(cmd.Context(), cfg, func(client *api.Client) error {
			rec, err := client.Update(cmd.Context(), entity, args[0], fields)
			if err != nil {
				return err
			}
			if out.structured() {
				return out.write(cmd.OutOrStdout(), rec)
			}
			return writePlain(cmd.OutOrStdout(), "%s\n", rec.ID())
		})
	}
	return cmd
}

func newEntityDeleteCmd(cfg *config.Config, out *outputOptions, entity models.Entity) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a " + strings.ToLower(entity.Label),
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), cfg, func(client *api.Client) error {
				resp, err := client.Delete(cmd.Context(), entity, args[0])
				if err != nil {
					return err
				}
				if out.structured() {
					return out.write(cmd.OutOrStdout(), resp)
				}
				return writePlain(cmd.OutOrStdout(), "%s\n", resp.Message)
			})
		},
	}
}
