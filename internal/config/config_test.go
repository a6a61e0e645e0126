package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	s := Default()

	assert.Equal(t, DefaultServerRoute, s.ServerRoute)
	assert.Equal(t, 30*time.Second, s.APITimeout)
	assert.Equal(t, "La Satanica", s.AppTitle)
	assert.NoError(t, s.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "SERVER_ROUTE=http://dotenv.local\nAPP_TITLE=Desde dotenv\nAPI_TIMEOUT=5\n")
	cfgFile := writeFile(t, dir, "config.yaml", "server_route: http://yaml.local\napi_timeout: 45s\n")

	s, path, err := Load(Options{
		ConfigPath: cfgFile,
		EnvFile:    envFile,
		Getenv:     env(map[string]string{EnvLogLevel: "debug"}),
	})
	require.NoError(t, err)

	assert.Equal(t, cfgFile, path)
	assert.Equal(t, "http://yaml.local", s.ServerRoute)
	assert.Equal(t, 45*time.Second, s.APITimeout)
	assert.Equal(t, "Desde dotenv", s.AppTitle)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yaml", "server_route: http://yaml.local\ncontract_check: false\n")

	s, _, err := Load(Options{
		ConfigPath: cfgFile,
		EnvFile:    filepath.Join(dir, "missing.env.unused"),
		Getenv: env(map[string]string{
			EnvServerRoute:   "https://env.local",
			EnvContractCheck: "true",
			EnvAPITimeout:    "1m",
		}),
	})
	require.Error(t, err, "an explicit env file must exist")
	assert.Nil(t, s)

	s, _, err = Load(Options{
		ConfigPath: cfgFile,
		EnvFile:    writeFile(t, dir, "empty.env", ""),
		Getenv: env(map[string]string{
			EnvServerRoute:   "https://env.local",
			EnvContractCheck: "true",
			EnvAPITimeout:    "1m",
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://env.local", s.ServerRoute)
	assert.True(t, s.ContractCheck)
	assert.Equal(t, time.Minute, s.APITimeout)
}

func TestLoadExpandsVariables(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yaml", "server_route: https://${API_HOST}/v1\n")

	s, _, err := Load(Options{
		ConfigPath: cfgFile,
		EnvFile:    writeFile(t, dir, "vars.env", "API_HOST=api.example.com\n"),
		Getenv:     env(nil),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", s.ServerRoute)
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(Options{
		ConfigPath: filepath.Join(dir, "nope.yaml"),
		EnvFile:    writeFile(t, dir, "empty.env", ""),
		Getenv:     env(nil),
	})

	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.env", "")

	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{"bad yaml", "server_route: [", nil},
		{"bad file timeout", "api_timeout: soon", nil},
		{"bad env timeout", "", map[string]string{EnvAPITimeout: "later"}},
		{"bad env bool", "", map[string]string{EnvContractCheck: "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile := writeFile(t, dir, "config.yaml", tt.yaml)
			_, _, err := Load(Options{ConfigPath: cfgFile, EnvFile: empty, Getenv: env(tt.env)})
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"http allowed", func(s *Settings) { s.ServerRoute = "http://127.0.0.1:8000" }, false},
		{"relative url", func(s *Settings) { s.ServerRoute = "/api" }, true},
		{"other scheme", func(s *Settings) { s.ServerRoute = "ftp://files.local" }, true},
		{"zero timeout", func(s *Settings) { s.APITimeout = 0 }, true},
		{"bad log format", func(s *Settings) { s.LogFormat = "xml" }, true},
		{"warning level", func(s *Settings) { s.LogLevel = "WARNING" }, false},
		{"bad log level", func(s *Settings) { s.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if tt.wantErr {
				assert.Error(t, s.Validate())
			} else {
				assert.NoError(t, s.Validate())
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout("30")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	d, err = ParseTimeout("1500ms")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	_, err = ParseTimeout("")
	assert.Error(t, err)
}

func TestYAMLRoundTripsThroughLoad(t *testing.T) {
	s := Default()
	s.ServerRoute = "https://api.example.com"
	s.APITimeout = 12 * time.Second
	s.ContractCheck = true
	s.MetricsFile = "/var/lib/node_exporter/backoffice.prom"
	s.TraceEndpoint = "http://localhost:4318"

	data, err := s.YAML()
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, yaml.Unmarshal(data, &fields))
	assert.Equal(t, "12s", fields["api_timeout"])

	dir := t.TempDir()
	loaded, _, err := Load(Options{
		ConfigPath: writeFile(t, dir, "config.yaml", string(data)),
		EnvFile:    writeFile(t, dir, "empty.env", ""),
		Getenv:     env(nil),
	})
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
