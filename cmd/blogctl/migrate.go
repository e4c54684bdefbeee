package main

import (
	"fmt"
	"strconv"

	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Inspect and change the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending SQL migrations (PostgreSQL only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBDriver != config.DriverPostgres {
			return fmt.Errorf("sql migrations require DB_DRIVER=postgres, use \"migrate auto\" for %s", cfg.DBDriver)
		}
		n, err := database.RunMigrations(cmd.Context(), db)
		if err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s applied %d migration(s)\n", green("✓"), n)
		return nil
	},
}

var migrateAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Apply the schema using the configured DB_SCHEMA_MODE",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withSchema(cmd); err != nil {
			return fmt.Errorf("schema apply failed: %w", err)
		}
		fmt.Printf("%s schema applied\n", color.GreenString("✓"))
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [version]",
	Short: "Roll back one migration (the latest when no version is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 0 {
			v, err := database.RollbackLatest(ctx, db)
			if err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			if v == 0 {
				fmt.Println(color.YellowString("No applied migrations"))
				return nil
			}
			fmt.Printf("%s rolled back migration %d\n", color.GreenString("✓"), v)
			return nil
		}

		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		fmt.Printf("%s rolled back migration %d\n", color.GreenString("✓"), version)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the schema mode and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := database.GetSchemaStatus(cmd.Context(), db, cfg)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("\n%s\n", cyan("=== Schema Status ==="))
		fmt.Printf("  Mode:         %s\n", status.Mode)
		fmt.Printf("  Environment:  %s\n", status.Environment)
		fmt.Printf("  Run SQL:      %t\n", status.WillRunSQL)
		fmt.Printf("  Auto-migrate: %t\n", status.WillRunAutoMigrate)
		fmt.Printf("  Applied:      %d\n", len(status.AppliedVersions))
		fmt.Printf("  Pending:      %d\n", len(status.PendingMigrations))
		for _, m := range status.PendingMigrations {
			fmt.Printf("    %s %s\n", yellow("•"), m.String())
		}
		fmt.Println()
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateAutoCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
