package main

import (
	"fmt"
	"strconv"

	"blogicum/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Schema operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			n, err := database.NewMigrator(rt.db).Up(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("applied %d migration(s)\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "auto",
		Short: "Apply the GORM automigration for all models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.cfg.DBSchemaMode = database.SchemaModeAuto
			if err := database.ApplySchema(cmd.Context(), rt.db, rt.cfg); err != nil {
				return fmt.Errorf("auto schema apply failed: %w", err)
			}
			cmd.Println("automigrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the schema policy and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			status, err := database.GetSchemaStatus(cmd.Context(), rt.db, rt.cfg)
			if err != nil {
				return fmt.Errorf("schema status failed: %w", err)
			}
			cmd.Printf("mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d\n",
				status.Mode, status.Environment, status.RunSQL, status.RunAuto,
				len(status.Applied), len(status.Pending))
			for _, m := range status.Pending {
				cmd.Printf("pending: %s\n", m.String())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down <version>",
		Short: "Roll back one applied migration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			rt, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := database.NewMigrator(rt.db).Down(cmd.Context(), version); err != nil {
				return err
			}
			cmd.Printf("rolled back migration %d\n", version)
			return nil
		},
	})

	return cmd
}
