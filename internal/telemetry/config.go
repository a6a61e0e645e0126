package telemetry

// Config holds configuration for the tracer
type Config struct {
	// ServiceName is the name reported on every span
	ServiceName string

	// ServiceVersion is the client version
	ServiceVersion string

	// Endpoint is the OTLP/HTTP collector, as host:port or a full URL.
	// Tracing is disabled when empty.
	Endpoint string

	// Insecure sends spans over plain HTTP
	Insecure bool

	// SampleRate is the fraction of navigations traced (0.0 to 1.0)
	SampleRate float64
}

// DefaultConfig returns tracing disabled
func DefaultConfig() Config {
	return Config{
		ServiceName:    "backoffice",
		ServiceVersion: "dev",
		SampleRate:     1.0,
	}
}

// Enabled reports whether spans are exported
func (c Config) Enabled() bool {
	return c.Endpoint != ""
}
