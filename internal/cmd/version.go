package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/version"
)

var (
	versionVerbose bool
	versionJSON    bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Long: `Print the client version. --verbose adds the commit, build date,
Go version, platform and the configured API server.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "show build details and the API server")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print build details as JSON")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()
	out := cmd.OutOrStdout()

	switch {
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("encode version: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case versionVerbose:
		fmt.Fprintln(out, info.String())
		if cc, err := NewCommandContext(cmd); err == nil {
			fmt.Fprintf(out, "API server: %s\n", cc.Settings.ServerRoute)
		}
	default:
		fmt.Fprintf(out, "backoffice %s\n", info.Short())
	}
	return nil
}
