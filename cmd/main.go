package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"telesalud-admin/cmd/bootstrap"
	"telesalud-admin/config"
	"telesalud-admin/internal/infrastructure/database"
	"telesalud-admin/internal/infrastructure/reniec"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "telesalud-admin",
		Short:         "Telehealth administration API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(dniCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Run the application
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the self-hosted Postgres schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return reportVersion(m)
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return reportVersion(m)
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "number of migrations to roll back")

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DB.Host == "" || cfg.DB.Name == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required to run migrations")
	}

	m, err := database.NewMigrator(database.MigrationURL(cfg.DB))
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

func reportVersion(m *database.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Schema migrated")
	return nil
}

func dniCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dni <numero>",
		Short: "Look up a national id in the RENIEC registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := bootstrap.NewLogger(cfg.App.LogLevel)

			persona, err := reniec.NewClient(cfg.Reniec, cfg.App.HTTPClientTimeout, log).LookupDNI(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(persona)
		},
	}
}
