package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/view"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List console screens and the permissions guarding them",
	Long: `List every console route with the permissions that open it. Holding
any one of the listed permissions grants access; routes without permissions
are open to any logged-in user.

Examples:
  # Show the route table
  backoffice routes
`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	return renderTable(cmd.OutOrStdout(), []string{"Route", "Permissions", "Screen"}, routeRows())
}

func routeRows() [][]string {
	screens := view.Routes(view.Options{})

	rows := make([][]string, 0, len(router.AllRoutes()))
	for _, route := range router.AllRoutes() {
		rows = append(rows, []string{string(route), permissionsLabel(route), screenLabel(route, screens)})
	}
	return rows
}

func permissionsLabel(route router.Route) string {
	if route == router.Login {
		return "(public)"
	}
	perms := router.RequiredPermissions(route)
	if len(perms) == 0 {
		return "(any session)"
	}
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return strings.Join(names, " | ")
}

func screenLabel(route router.Route, screens map[router.Route]router.Factory) string {
	switch {
	case route == router.Logout:
		return "ends the session"
	case screens[route] != nil:
		return "yes"
	default:
		return "not registered"
	}
}
