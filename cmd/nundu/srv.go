package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"nundu/internal/config"
	"nundu/internal/server"
	"nundu/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the nundu API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DataDir == "" {
				return fmt.Errorf("data dir is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening store", "backend", cfg.Storage, "data_dir", cfg.DataDir)
			st, err := store.Open(cfg.Storage, cfg.DataDir)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(addr, st, server.Options{
				Storage:     cfg.Storage,
				CORSOrigins: cfg.CORSOrigins,
			}, logger)
			return srv.Run(cmd.Context())
		},
	}
}
