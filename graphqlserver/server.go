package graphqlserver

import (
	"context"
	_ "embed"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	inventoryService "stockorder.GO/service/inventory"
)

//go:embed schema.graphqls
var schema string

// RootResolver resolves the Query fields against the inventory service.
type RootResolver struct {
	Inventory *inventoryService.Service
}

// InStockArgs matches the inStock query arguments.
type InStockArgs struct {
	SkuCode  string
	Quantity int32
}

func (r *RootResolver) InStock(ctx context.Context, args InStockArgs) (bool, error) {
	return r.Inventory.IsInStock(ctx, args.SkuCode, int(args.Quantity))
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(svc *inventoryService.Service) (*gql.Schema, error) {
	return gql.ParseSchema(schema, &RootResolver{Inventory: svc})
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(s *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: s}
}
