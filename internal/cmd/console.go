package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/config"
	"github.com/lasatanica/backoffice/internal/contract"
	"github.com/lasatanica/backoffice/internal/log"
	"github.com/lasatanica/backoffice/internal/metrics"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/service"
	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/internal/telemetry"
	"github.com/lasatanica/backoffice/internal/tui"
	"github.com/lasatanica/backoffice/internal/version"
	"github.com/lasatanica/backoffice/internal/view"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
)

// console is the wired application behind the interactive screens
type console struct {
	Services *service.Container
	Buffer   *surface.Buffer
	Router   *router.Router
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// newConsole wires client, session, services and router for settings
func newConsole(ctx context.Context, s *config.Settings, logger *log.Logger) (*console, error) {
	registry, m := metrics.NewRegistry()
	clientCfg := &client.Config{
		Timeout:  s.APITimeout,
		Observer: m,
		Logger:   logger,
	}
	if s.ContractCheck {
		c, err := contract.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load API contract: %w", err)
		}
		clientCfg.Contract = c
	}

	services := service.NewContainer(client.NewWithConfig(s.ServerRoute, clientCfg), session.New())
	buf := surface.NewBuffer()

	r, err := router.New(router.Config{
		Surface:  buf,
		Services: services,
		Routes: view.Routes(view.Options{
			DownloadDir: s.DownloadDir,
			Now:         time.Now,
		}),
		ReportError: func(_ context.Context, err error) {
			view.ReportError(buf, err)
		},
		OnNavigate: func(route router.Route, outcome router.Outcome) {
			m.ObserveNavigation(string(route), outcome.String())
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &console{
		Services: services,
		Buffer:   buf,
		Router:   r,
		Registry: registry,
		Metrics:  m,
	}, nil
}

// flushMetrics writes the session metrics when a metrics file is configured
func (c *console) flushMetrics(ctx context.Context, path string, logger *log.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteFile(path, c.Registry); err != nil {
		logger.WithError(err).WarnContext(ctx, "metrics not written", "path", path)
		return
	}
	logger.DebugContext(ctx, "metrics written", "path", path)
}

// startTracing installs the tracer provider. The returned func flushes
// pending spans with a bounded wait.
func startTracing(ctx context.Context, s *config.Settings) (func() error, error) {
	cfg := telemetry.DefaultConfig()
	cfg.ServiceVersion = version.GetInfo().Short()
	cfg.Endpoint = s.TraceEndpoint
	cfg.Insecure = strings.HasPrefix(s.TraceEndpoint, "http://")

	shutdown, err := telemetry.InitProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdown(ctx)
	}, nil
}

// fileLogger opens the log file used while the console owns the terminal
func fileLogger(s *config.Settings) (*log.Logger, func() error, error) {
	out, f, err := log.OutputFile(s.LogFile)
	if err != nil {
		return nil, nil, LogFileError(s.LogFile, err)
	}

	logger := log.New(log.Config{
		Level:          log.ParseLevel(s.LogLevel),
		Format:         log.ParseFormat(s.LogFormat),
		Output:         out,
		ServiceName:    "backoffice",
		ServiceVersion: version.GetInfo().Short(),
	})
	return logger, f.Close, nil
}

// stderrLogger is used by the non-interactive commands
func stderrLogger(s *config.Settings) *log.Logger {
	return log.New(log.Config{
		Level:          log.ParseLevel(s.LogLevel),
		Format:         log.ParseFormat(s.LogFormat),
		Output:         log.OutputStderr(),
		ServiceName:    "backoffice",
		ServiceVersion: version.GetInfo().Short(),
	})
}

func runConsole(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if !tui.IsInteractive() {
		return NewErrorWithSuggestions("The console needs an interactive terminal", nil,
			"Run backoffice from a terminal, not through a pipe",
			"Use the non-interactive commands: backoffice --help",
		)
	}

	logger, closeLog, err := fileLogger(cc.Settings)
	if err != nil {
		return err
	}
	defer closeLog()
	log.SetDefaultLogger(logger)

	ctx := cmd.Context()
	stopTracing, err := startTracing(ctx, cc.Settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := stopTracing(); err != nil {
			logger.WithError(err).WarnContext(ctx, "trace export incomplete")
		}
	}()

	app, err := newConsole(ctx, cc.Settings, logger)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "console starting",
		"server_route", cc.Settings.ServerRoute,
		"config", cc.ConfigPath,
		"contract_check", cc.Settings.ContractCheck,
	)
	defer app.flushMetrics(ctx, cc.Settings.MetricsFile, logger)
	defer app.Services.Logout()

	header := fmt.Sprintf("%s v%s", cc.Settings.AppTitle, cc.Settings.AppVersion)
	if err := tui.Run(ctx, app.Buffer, app.Router, router.Home, header); err != nil {
		logger.WithError(err).ErrorContext(ctx, "console stopped")
		return err
	}
	fmt.Fprintln(os.Stderr, "Sesión cerrada.")
	return nil
}
