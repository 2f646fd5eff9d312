package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nundu/internal/config"
	"nundu/internal/models"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	out := &outputOptions{}
	var logLevel string

	cmd := &cobra.Command{
		Use:           "nundu",
		Short:         "Nundu tracks tasks, developers and sprints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if out.json && out.yaml {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}
			warning, err := setupLogging(cmd.ErrOrStderr(), logLevel, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&out.json, "json", false, "output JSON")
	cmd.PersistentFlags().BoolVar(&out.yaml, "yaml", false, "output YAML")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	taskCmd := newEntityCmd(cfg, out, models.Tasks)
	taskCmd.AddCommand(newBoardCmd(cfg, out))

	cmd.AddCommand(
		newSrvCmd(cfg),
		newInfoCmd(cfg, out),
		taskCmd,
		newEntityCmd(cfg, out, models.Developers),
		newEntityCmd(cfg, out, models.Sprints),
		newCheckCmd(out),
		newConfigCmd(cfg, out),
	)

	return cmd
}
