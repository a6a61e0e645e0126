package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Terminal back office for staff",
	Long: `backoffice is the staff console for users, economic movements, invoices,
accounting documents, events and organizations.

Run without a subcommand to open the interactive console. The console asks
for credentials first and only shows the screens your permissions allow.

Configuration is read from ~/.backoffice/config.yaml, a .env file in the
working directory and environment variables (SERVER_ROUTE, API_TIMEOUT, ...).
Flags override all of them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConsole,
}

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.backoffice/config.yaml)")
	flags.String("env-file", "", "dotenv file (default is ./.env when present)")
	flags.String("server", "", "API base URL (overrides server_route)")
	flags.Duration("timeout", 0, "API request timeout (overrides api_timeout)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("log-file", "", "log file used while the console is open")
	flags.Bool("contract-check", false, "reject API calls missing from the embedded contract")
	flags.Bool("no-color", os.Getenv("NO_COLOR") != "", "disable colored output")
}
