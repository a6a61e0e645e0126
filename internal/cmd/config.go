package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View backoffice configuration",
	Long: `Inspect the configuration stored at ~/.backoffice/config.yaml

Configuration includes:
  • API base URL (server_route) and request timeout (api_timeout)
  • Console title and version
  • Logging settings
  • Download directory for invoices and documents

Examples:
  # View the effective configuration
  backoffice config view

  # Write a config file with the current settings
  backoffice config init

  # Show configuration file path
  backoffice config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the effective configuration",
	Long:  `Display the configuration after defaults, .env, config file, environment and flags are applied.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path of the configuration file that is read.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	data, err := cc.Settings.YAML()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := cc.ConfigPath
	if source == "" {
		source = "(none, using defaults and environment)"
	}
	fmt.Fprintf(out, "# Configuration file: %s\n", source)
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return NewErrorWithSuggestions(fmt.Sprintf("Config file %s already exists", path), nil,
			"Overwrite it: backoffice config init --force",
			"Inspect it: backoffice config view",
		)
	}

	data, err := cc.Settings.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration written to %s\n", color.GreenString("✓"), path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), displayPath(cc.ConfigPath))
	return nil
}
