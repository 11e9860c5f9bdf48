package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stockorder.GO/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes adds GET /health, which pings the service database.
func RegisterHealthRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/health", func(c echo.Context) error {
		if db == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "down", "db": "not configured"})
		}
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "down", "db": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "up"})
	})
}
