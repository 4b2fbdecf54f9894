package config

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost             = "0.0.0.0"
	DefaultServerPort             = 8080
	DefaultShutdownTimeoutSeconds = 15

	// Processing defaults
	DefaultTaskTimeoutSeconds = 600
	DefaultCacheTTLMinutes    = 60

	// Analysis defaults
	DefaultGrepLimit = 0

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)
