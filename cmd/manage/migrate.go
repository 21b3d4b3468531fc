package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/people360/internal/infrastructure/postgres"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base de datos",
		Long:  `Aplica, revierte o lista las migraciones SQL embebidas (goose).`,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Aplicar migraciones pendientes", RunE: runMigrate(postgres.MigrateUp, "migraciones aplicadas")},
		&cobra.Command{Use: "down", Short: "Revertir la última migración", RunE: runMigrate(postgres.MigrateDown, "migración revertida")},
		&cobra.Command{Use: "status", Short: "Estado de las migraciones", RunE: runMigrate(postgres.MigrateStatus, "")},
	)
	return cmd
}

func runMigrate(fn func(context.Context, *sql.DB) error, done string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := postgres.OpenSQL(cfg.DB.ConnectionString())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := fn(cmd.Context(), db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if done != "" {
			log.Info().Msg(done)
		}
		return nil
	}
}
