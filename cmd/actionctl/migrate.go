package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/outbound-tracker/internal/adapter/postgres"
	"github.com/heartmarshall/outbound-tracker/internal/config"
)

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.loadConfig(); err != nil {
				return err
			}
			if e.cfg.Store.Driver != config.StoreDriverPostgres {
				return fmt.Errorf("migrate needs store.driver=postgres (got %q)", e.cfg.Store.Driver)
			}
			if err := postgres.Migrate(cmd.Context(), e.cfg.Database.DSN, e.log); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s schema up to date\n", okMark())
			return nil
		},
	}
}
