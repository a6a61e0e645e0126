package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/contract"
	"github.com/lasatanica/backoffice/internal/health"
	"github.com/lasatanica/backoffice/internal/service"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the console can run",
	Long: `Run diagnostics before opening the console:

  • api-reachable  the API at server_route answers HTTP
  • api-contract   the embedded contract covers every client endpoint
  • log-dir        the log file directory is writable
  • download-dir   downloads can be saved

Exits non-zero when a check is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := stderrLogger(cc.Settings)

	doc, err := contract.Load(ctx)
	if err != nil {
		return fmt.Errorf("load API contract: %w", err)
	}

	api := client.NewWithConfig(cc.Settings.ServerRoute, &client.Config{
		Timeout: cc.Settings.APITimeout,
		Logger:  logger,
	})

	manager := health.NewManager().WithTimeout(cc.Settings.APITimeout)
	manager.AddChecker(health.NewAPIChecker(api))
	manager.AddChecker(health.NewContractChecker(doc, service.Endpoints()))
	manager.AddChecker(health.NewDirChecker("log-dir", filepath.Dir(cc.Settings.LogFile)))
	manager.AddChecker(health.NewDirChecker("download-dir", cc.Settings.DownloadDir))

	results := manager.Check(ctx)
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{r.Name, statusLabel(r.Status), r.Message, r.Latency.Round(time.Millisecond).String()}
	}

	out := cmd.OutOrStdout()
	if err := renderTable(out, []string{"Check", "Status", "Message", "Latency"}, rows); err != nil {
		return err
	}

	overall := health.OverallStatus(results)
	fmt.Fprintf(out, "\nOverall: %s\n", statusLabel(overall))
	if overall == health.StatusUnhealthy {
		return NewErrorWithSuggestions("One or more checks are unhealthy", nil,
			fmt.Sprintf("Check server_route (%s) and your network", cc.Settings.ServerRoute),
			"Choose writable locations with --log-file and download_dir",
		)
	}
	return nil
}

func statusLabel(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return color.GreenString("healthy")
	case health.StatusDegraded:
		return color.YellowString("degraded")
	default:
		return color.RedString("unhealthy")
	}
}
