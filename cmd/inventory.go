package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockorder.GO/core/migrate"
	inventoryService "stockorder.GO/service/inventory"
)

var (
	invSKU       string
	invQty       int
	invThreshold int
)

var inventorySetCmd = &cobra.Command{
	Use:   "inventory:set",
	Short: "Create or overwrite the on-hand quantity of a SKU",
	RunE: func(c *cobra.Command, args []string) error {
		_, db, err := bootstrap(migrate.Inventory)
		if err != nil {
			return err
		}
		if err := inventoryService.NewService(db).SetQuantity(c.Context(), invSKU, invQty); err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "%s = %d\n", invSKU, invQty)
		return nil
	},
}

var inventoryCheckCmd = &cobra.Command{
	Use:   "inventory:check",
	Short: "Print whether a quantity of a SKU is in stock",
	RunE: func(c *cobra.Command, args []string) error {
		_, db, err := bootstrap(migrate.Inventory)
		if err != nil {
			return err
		}
		ok, err := inventoryService.NewService(db).IsInStock(c.Context(), invSKU, invQty)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), ok)
		return nil
	},
}

var inventoryLowStockCmd = &cobra.Command{
	Use:   "inventory:lowstock",
	Short: "List SKUs whose quantity is below a threshold",
	RunE: func(c *cobra.Command, args []string) error {
		cfg, db, err := bootstrap(migrate.Inventory)
		if err != nil {
			return err
		}
		threshold := invThreshold
		if threshold < 0 {
			threshold = cfg.LowStockThreshold
		}
		items, err := inventoryService.NewService(db).LowStock(c.Context(), threshold)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Fprintf(c.OutOrStdout(), "%-32s %d\n", it.SkuCode, it.Quantity)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{inventorySetCmd, inventoryCheckCmd} {
		c.Flags().StringVarP(&invSKU, "sku", "s", "", "SKU code (required)")
		c.Flags().IntVarP(&invQty, "qty", "q", 0, "Quantity")
		c.MarkFlagRequired("sku")
		rootCmd.AddCommand(c)
	}
	inventoryLowStockCmd.Flags().IntVarP(&invThreshold, "threshold", "t", -1, "Threshold (defaults to LOW_STOCK_THRESHOLD)")
	rootCmd.AddCommand(inventoryLowStockCmd)
}
