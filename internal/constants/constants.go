package constants

import "time"

// Database connection
const (
	DBConnectMaxRetries     = 5
	DBConnectTimeout        = 5 * time.Second
	DBConnectInitialBackoff = 500 * time.Millisecond
	DBMaxConnIdleTime       = 2 * time.Minute
	DBHealthCheckPeriod     = 30 * time.Second
)

// HTTP server
const (
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Seeding
const (
	DefaultSeedSource = "poc_source"
	MaxSeedNumbers    = 50
)
