package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"nundu/internal/api"
	"nundu/internal/config"
	"nundu/internal/models"
)

// otherColumn collects tasks whose state is not a board column.
const otherColumn = "other"

type boardColumn struct {
	State string          `json:"state"`
	Tasks []models.Record `json:"tasks"`
}

func newBoardCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	var sprint string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks grouped by state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			setIfNotEmpty(query, "sprint", sprint)

			return withClient(cmd.Context(), cfg, func(client *api.Client) error {
				tasks, err := client.List(cmd.Context(), models.Tasks, query)
				if err != nil {
					return err
				}
				columns := groupBoard(tasks)
				if out.structured() {
					return out.write(cmd.OutOrStdout(), columns)
				}
				return writeBoard(cmd.OutOrStdout(), columns)
			})
		},
	}

	cmd.Flags().StringVar(&sprint, "sprint", "", "only show tasks in this sprint")
	return cmd
}

// groupBoard buckets tasks into the board columns in order. A trailing
// column holds any other states and is omitted when empty.
func groupBoard(tasks []models.Record) []boardColumn {
	columns := make([]boardColumn, 0, len(models.BoardStates)+1)
	index := make(map[string]int, len(models.BoardStates))
	for i, state := range models.BoardStates {
		index[string(state)] = i
		columns = append(columns, boardColumn{State: string(state), Tasks: []models.Record{}})
	}

	var other []models.Record
	for _, task := range tasks {
		state := task.String("state")
		if i, ok := index[state]; ok {
			columns[i].Tasks = append(columns[i].Tasks, task)
			continue
		}
		other = append(other, task)
	}
	if len(other) > 0 {
		columns = append(columns, boardColumn{State: otherColumn, Tasks: other})
	}
	return columns
}

func writeBoard(w io.Writer, columns []boardColumn) error {
	for _, column := range columns {
		if _, err := fmt.Fprintf(w, "%s (%d)\n", column.State, len(column.Tasks)); err != nil {
			return err
		}
		for _, task := range column.Tasks {
			line, err := formatRecordLine(models.Tasks, task)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
