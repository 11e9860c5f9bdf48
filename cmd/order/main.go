// Standalone order service, run with: go run ./cmd/order
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
	figure.NewFigure("order", "small", true).Print()

	ctx, stop := cmd.SignalContext(context.Background())
	defer stop()
	if err := cmd.ServeOrder(ctx, "", config.GetEnv("MIGRATE_ON_START", "false") == "true"); err != nil {
		log.Fatalf("order service: %v", err)
	}
}
