package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nundu/internal/models"
	"nundu/internal/sanitize"
)

type checkResult struct {
	Accepted bool              `json:"accepted"`
	Data     map[string]any    `json:"data,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func newCheckCmd(out *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <task|developer|sprint> [file|-]",
		Short: "Sanitize a JSON object without contacting the server",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := models.EntityByName(args[0])
			if err != nil {
				return err
			}
			schema, err := sanitize.SchemaFor(entity.Name)
			if err != nil {
				return err
			}

			source := "-"
			if len(args) == 2 {
				source = args[1]
			}
			input, err := readCheckInput(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			return runCheck(cmd.OutOrStdout(), out, entity, schema, input)
		},
	}
}

func readCheckInput(stdin io.Reader, source string) (map[string]any, error) {
	var r io.Reader = stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var input map[string]any
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, fmt.Errorf("input must be a JSON object: %w", err)
	}
	if input == nil {
		return nil, fmt.Errorf("input must be a JSON object")
	}
	return input, nil
}

func runCheck(w io.Writer, out *outputOptions, entity models.Entity, schema sanitize.Schema, input map[string]any) error {
	result := sanitize.Sanitize(input, schema)
	rejected := &fieldErrors{label: strings.ToLower(entity.Label), Result: result}

	if out.structured() {
		payload := checkResult{Accepted: result.Accepted(), Data: result.Data, Errors: result.Errors}
		if err := out.write(w, payload); err != nil {
			return err
		}
		if !result.Accepted() {
			return rejected
		}
		return nil
	}

	if !result.Accepted() {
		return rejected
	}
	return (&outputOptions{json: true}).write(w, result.Data)
}
