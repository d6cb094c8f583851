package domain

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	Server    ServerConfig
	Download  DownloadConfig
	Cache     CacheConfig
	Styles    StylesConfig
	Resources ResourcesConfig
	Log       LogConfig
}

// ServerConfig describes the remote map service.
type ServerConfig struct {
	BaseURL           string
	Timeout           time.Duration // 0 leaves the transport default
	RequestsPerSecond float64       // 0 disables throttling
	Burst             int
}

// DownloadConfig holds the retry policy.
type DownloadConfig struct {
	Retries        int
	InitialBackoff time.Duration
}

// CacheConfig sizes the in-memory caches and locates the disk cache.
type CacheConfig struct {
	Dir           string
	MemoryEntries int
	GridEntries   int
}

// StylesConfig selects the stylesheet. An empty Path uses the built-in sheet.
type StylesConfig struct {
	Path string
}

// ResourcesConfig locates the tab-separated map data. An empty Sectors
// uses the built-in sector list.
type ResourcesConfig struct {
	Sectors string
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:           "https://travellermap.com",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 4,
			Burst:             2,
		},
		Download: DownloadConfig{
			Retries:        DefaultRetries,
			InitialBackoff: DefaultInitialBackoff,
		},
		Cache: CacheConfig{
			MemoryEntries: 256,
			GridEntries:   8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
