package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockorder.GO/core/migrate"
)

var migrateComponent string

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply database migrations for the inventory and/or order service",
	RunE: func(c *cobra.Command, args []string) error {
		components := []string{migrate.Inventory, migrate.Order}
		if migrateComponent != "all" {
			components = []string{migrateComponent}
		}
		for _, component := range components {
			_, db, err := bootstrap(component)
			if err != nil {
				return err
			}
			if err := migrate.Up(db, component); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%s: migrations applied\n", component)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateComponent, "component", "c", "all", "inventory, order or all")
	rootCmd.AddCommand(migrateCmd)
}
