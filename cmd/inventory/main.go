// Standalone inventory service, run with: go run ./cmd/inventory
package main

import (
	"context"
	"log"

	"github.com/common-nighthawk/go-figure"

	"stockorder.GO/cmd"
	"stockorder.GO/config"
	_ "stockorder.GO/custom"
)

func main() {
	config.LoadEnv()
	figure.NewFigure("inventory", "small", true).Print()

	ctx, stop := cmd.SignalContext(context.Background())
	defer stop()
	if err := cmd.ServeInventory(ctx, "", config.GetEnv("MIGRATE_ON_START", "false") == "true"); err != nil {
		log.Fatalf("inventory service: %v", err)
	}
}
