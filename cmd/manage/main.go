// Comando manage: migraciones de base de datos y tareas administrativas.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/people360/pkg/config"
	"github.com/jhoicas/people360/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "manage",
		Short:        "Herramientas de administración de People360",
		Long:         `Aplica migraciones de la base de datos y crea usuarios administradores.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCommand(),
		newCreateAdminCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig carga la configuración e inicializa el logger global.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "manage"})
	return cfg, log, nil
}
