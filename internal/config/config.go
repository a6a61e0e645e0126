// Package config loads the client settings.
//
// Sources, lowest precedence first:
//
//  1. built-in defaults
//  2. a .env file (optional)
//  3. the YAML config file, with ${VAR} references expanded
//  4. process environment variables
//
// Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lasatanica/backoffice/internal/log"
)

// Defaults
const (
	DefaultServerRoute = "https://lasatanicabk.pacoserver.cc"
	DefaultAPITimeout  = 30 * time.Second
	DefaultAppTitle    = "La Satanica"
	DefaultAppVersion  = "1.0.0"
	DefaultEnvFile     = ".env"
)

// Environment variable names
const (
	EnvServerRoute   = "SERVER_ROUTE"
	EnvAPITimeout    = "API_TIMEOUT"
	EnvAppTitle      = "APP_TITLE"
	EnvAppVersion    = "APP_VERSION"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvLogFile       = "LOG_FILE"
	EnvContractCheck = "CONTRACT_CHECK"
	EnvDownloadDir   = "DOWNLOAD_DIR"
	EnvMetricsFile   = "METRICS_FILE"
	EnvTraceEndpoint = "TRACE_ENDPOINT"
	EnvConfigFile    = "BACKOFFICE_CONFIG"
)

// Settings is the effective client configuration
type Settings struct {
	ServerRoute   string
	APITimeout    time.Duration
	AppTitle      string
	AppVersion    string
	LogLevel      string
	LogFormat     string
	LogFile       string
	ContractCheck bool
	DownloadDir   string
	MetricsFile   string
	TraceEndpoint string
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		ServerRoute: DefaultServerRoute,
		APITimeout:  DefaultAPITimeout,
		AppTitle:    DefaultAppTitle,
		AppVersion:  DefaultAppVersion,
		LogLevel:    "info",
		LogFormat:   "text",
		LogFile:     DefaultLogFile(),
		DownloadDir: DefaultDownloadDir(),
	}
}

// Options controls where Load looks
type Options struct {
	// ConfigPath is the YAML file. Empty means $BACKOFFICE_CONFIG, then
	// DefaultPath when that file exists.
	ConfigPath string
	// EnvFile is the dotenv file. Empty means DefaultEnvFile; a missing
	// file is ignored.
	EnvFile string
	// Getenv reads the process environment. Nil means os.Getenv.
	Getenv func(string) string
}

// Load builds the settings from every source. It returns the YAML path that
// was read, or "" when none was.
func Load(opts Options) (*Settings, string, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return nil, "", err
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	s := Default()
	if err := s.applyEnv(func(key string) string { return dotenv[key] }); err != nil {
		return nil, "", fmt.Errorf(".env: %w", err)
	}

	path, explicit := resolvePath(opts.ConfigPath, lookup)
	if path != "" {
		if err := s.loadFile(path, lookup); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, "", err
			}
			path = ""
		}
	}

	if err := s.applyEnv(getenv); err != nil {
		return nil, "", err
	}
	return s, path, nil
}

// DefaultPath returns ~/.backoffice/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".backoffice", "config.yaml")
	}
	return filepath.Join(home, ".backoffice", "config.yaml")
}

// DefaultLogFile returns the log file used while the terminal UI owns the
// screen
func DefaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "backoffice", "backoffice.log")
}

// DefaultDownloadDir returns ~/Downloads, or the OS temp dir without a home
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, "Downloads")
}

// Validate checks that the settings can drive a client
func (s *Settings) Validate() error {
	u, err := url.Parse(s.ServerRoute)
	if err != nil {
		return fmt.Errorf("server_route %q: %w", s.ServerRoute, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server_route %q must be an absolute http or https URL", s.ServerRoute)
	}
	if s.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", s.APITimeout)
	}
	if _, ok := log.LookupLevel(s.LogLevel); !ok {
		return fmt.Errorf("log_level %q must be debug, info, warn or error", s.LogLevel)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q must be text or json", s.LogFormat)
	}
	return nil
}

// YAML renders the settings in config file form
func (s *Settings) YAML() ([]byte, error) {
	timeout := s.APITimeout.String()
	return yaml.Marshal(fileSettings{
		ServerRoute:   &s.ServerRoute,
		APITimeout:    &timeout,
		AppTitle:      &s.AppTitle,
		AppVersion:    &s.AppVersion,
		LogLevel:      &s.LogLevel,
		LogFormat:     &s.LogFormat,
		LogFile:       &s.LogFile,
		ContractCheck: &s.ContractCheck,
		DownloadDir:   &s.DownloadDir,
		MetricsFile:   &s.MetricsFile,
		TraceEndpoint: &s.TraceEndpoint,
	})
}

// ParseTimeout accepts a Go duration ("45s") or a bare number of seconds
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return d, nil
}

// fileSettings is the YAML form. Absent keys keep the lower layers.
type fileSettings struct {
	ServerRoute   *string `yaml:"server_route,omitempty"`
	APITimeout    *string `yaml:"api_timeout,omitempty"`
	AppTitle      *string `yaml:"app_title,omitempty"`
	AppVersion    *string `yaml:"app_version,omitempty"`
	LogLevel      *string `yaml:"log_level,omitempty"`
	LogFormat     *string `yaml:"log_format,omitempty"`
	LogFile       *string `yaml:"log_file,omitempty"`
	ContractCheck *bool   `yaml:"contract_check,omitempty"`
	DownloadDir   *string `yaml:"download_dir,omitempty"`
	MetricsFile   *string `yaml:"metrics_file,omitempty"`
	TraceEndpoint *string `yaml:"trace_endpoint,omitempty"`
}

func (s *Settings) loadFile(path string, lookup func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f fileSettings
	expanded := os.Expand(string(data), lookup)
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if f.APITimeout != nil {
		d, err := ParseTimeout(*f.APITimeout)
		if err != nil {
			return fmt.Errorf("%s: api_timeout: %w", path, err)
		}
		s.APITimeout = d
	}
	set(&s.ServerRoute, f.ServerRoute)
	set(&s.AppTitle, f.AppTitle)
	set(&s.AppVersion, f.AppVersion)
	set(&s.LogLevel, f.LogLevel)
	set(&s.LogFormat, f.LogFormat)
	set(&s.LogFile, f.LogFile)
	set(&s.ContractCheck, f.ContractCheck)
	set(&s.DownloadDir, f.DownloadDir)
	set(&s.MetricsFile, f.MetricsFile)
	set(&s.TraceEndpoint, f.TraceEndpoint)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *Settings) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvServerRoute); v != "" {
		s.ServerRoute = v
	}
	if v := getenv(EnvAPITimeout); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
		s.APITimeout = d
	}
	if v := getenv(EnvAppTitle); v != "" {
		s.AppTitle = v
	}
	if v := getenv(EnvAppVersion); v != "" {
		s.AppVersion = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		s.LogFormat = v
	}
	if v := getenv(EnvLogFile); v != "" {
		s.LogFile = v
	}
	if v := getenv(EnvDownloadDir); v != "" {
		s.DownloadDir = v
	}
	if v := getenv(EnvMetricsFile); v != "" {
		s.MetricsFile = v
	}
	if v := getenv(EnvTraceEndpoint); v != "" {
		s.TraceEndpoint = v
	}
	if v := getenv(EnvContractCheck); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvContractCheck, v)
		}
		s.ContractCheck = b
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func resolvePath(path string, lookup func(string) string) (string, bool) {
	if path != "" {
		return path, true
	}
	if p := lookup(EnvConfigFile); p != "" {
		return p, true
	}
	return DefaultPath(), false
}
