package main

import (
	"github.com/spf13/cobra"

	"nundu/internal/api"
	"nundu/internal/config"
	"nundu/internal/models"
)

func newInfoCmd(cfg *config.Config, out *outputOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show storage location and record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}

				if out.structured() {
					return out.write(cmd.OutOrStdout(), resp)
				}

				w := cmd.OutOrStdout()
				_ = writePlain(w, "storage: %s\n", resp.Storage)
				_ = writePlain(w, "location: %s\n", resp.Location)
				_ = writePlain(w, "total: %d\n", resp.Total)
				for _, entity := range models.Entities() {
					_ = writePlain(w, "  %s: %d\n", entity.Name, resp.Counts[entity.Name])
				}
				return nil
			})
		},
	}
	return cmd
}
