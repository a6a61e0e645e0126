package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/config"
)

// CommandContext holds the effective settings of one command run.
// Commands build it in RunE instead of reading flags into globals:
//
//	func runCommand(cmd *cobra.Command, args []string) error {
//		cc, err := NewCommandContext(cmd)
//		if err != nil {
//			return err
//		}
//		// Use cc.Settings, cc.ConfigPath, ...
//	}
type CommandContext struct {
	Settings   *config.Settings
	ConfigPath string
	NoColor    bool
}

// NewCommandContext loads the configuration and applies the flags that were
// set on cmd on top of it
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	envFile, err := flags.GetString("env-file")
	if err != nil {
		return nil, err
	}

	settings, path, err := config.Load(config.Options{ConfigPath: configPath, EnvFile: envFile})
	if err != nil {
		return nil, ConfigLoadError(configPath, err)
	}

	if flags.Changed("server") {
		if settings.ServerRoute, err = flags.GetString("server"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if settings.APITimeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") {
		if settings.LogLevel, err = flags.GetString("log-level"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-format") {
		if settings.LogFormat, err = flags.GetString("log-format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-file") {
		if settings.LogFile, err = flags.GetString("log-file"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("contract-check") {
		if settings.ContractCheck, err = flags.GetBool("contract-check"); err != nil {
			return nil, err
		}
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}
	if noColor {
		color.NoColor = true
	}

	if err := settings.Validate(); err != nil {
		return nil, NewErrorWithSuggestions("Invalid configuration", err,
			"Check server_route and api_timeout: backoffice config view",
			fmt.Sprintf("Edit the config file: %s", displayPath(path)),
		)
	}

	return &CommandContext{
		Settings:   settings,
		ConfigPath: path,
		NoColor:    noColor,
	}, nil
}

func displayPath(path string) string {
	if path == "" {
		return config.DefaultPath()
	}
	return path
}
