// Package custom holds extensions registered through the cmd and api registries.
// Import it for side effects.
package custom

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"stockorder.GO/api"
	"stockorder.GO/cmd"
)

// Version is set at build time with -ldflags "-X stockorder.GO/custom.Version=...".
var Version = "dev"

func init() {
	cmd.Register(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), Version)
		},
	})

	api.RegisterGET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"version": Version})
	})
}
