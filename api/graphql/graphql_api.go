package graphql

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stockorder.GO/graphqlserver"
	inventoryService "stockorder.GO/service/inventory"
)

// RegisterGraphQLRoutes mounts POST /graphql on the inventory service.
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	schema, err := graphqlserver.NewSchema(inventoryService.NewService(db))
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	e.POST("/graphql", echo.WrapHandler(graphqlserver.Handler(schema)))
}
