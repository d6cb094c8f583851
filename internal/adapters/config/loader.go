// Package config provides the configuration loader for starmap.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the config file read when STARMAP_CONFIG is unset.
	DefaultFilename = "starmap.yaml"
	// DefaultEnvFile is the dotenv file loaded before the environment is read.
	DefaultEnvFile = ".env"

	// EnvConfig names the environment variable holding the config path.
	EnvConfig = "STARMAP_CONFIG"
)

// Environment overrides, applied after the file.
const (
	envBaseURL           = "STARMAP_BASE_URL"
	envTimeout           = "STARMAP_TIMEOUT"
	envRequestsPerSecond = "STARMAP_REQUESTS_PER_SECOND"
	envBurst             = "STARMAP_BURST"
	envRetries           = "STARMAP_RETRIES"
	envInitialBackoff    = "STARMAP_INITIAL_BACKOFF"
	envCacheDir          = "STARMAP_CACHE_DIR"
	envMemoryEntries     = "STARMAP_MEMORY_ENTRIES"
	envGridEntries       = "STARMAP_GRID_ENTRIES"
	envStyles            = "STARMAP_STYLES"
	envSectors           = "STARMAP_SECTORS"
	envLogLevel          = "STARMAP_LOG_LEVEL"
)

// Loader implements ports.ConfigLoader using a YAML file, a dotenv file and
// STARMAP_* environment variables.
type Loader struct {
	// EnvFile is the dotenv file to load first. Empty disables it.
	EnvFile string
	logger  ports.Logger
}

// NewLoader creates a new Loader reading DefaultEnvFile.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{EnvFile: DefaultEnvFile, logger: log}
}

// Load reads the configuration. An empty path means STARMAP_CONFIG, or
// DefaultFilename when that is unset. A missing file yields the defaults.
func (l *Loader) Load(path string) (domain.Config, error) {
	l.loadEnvFile()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultFilename
	}

	cfg, err := Load(path)
	if err != nil {
		return domain.Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	if err := Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *Loader) loadEnvFile() {
	if l.EnvFile == "" {
		return
	}
	if err := godotenv.Load(l.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		if l.logger != nil {
			l.logger.Warn("ignoring unreadable env file " + l.EnvFile + ": " + err.Error())
		}
	}
}

// Load reads a configuration file from path on top of the defaults. A
// missing file is not an error.
func Load(path string) (domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultConfig(), nil
	}
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults.
func Parse(data []byte) (domain.Config, error) {
	file := fromDomain(domain.DefaultConfig())
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}
	return file.toDomain()
}

// Validate checks the ranges of every setting.
func Validate(cfg domain.Config) error {
	switch {
	case cfg.Server.BaseURL == "":
		return invalid("server.base_url", cfg.Server.BaseURL)
	case cfg.Server.Timeout < 0:
		return invalid("server.timeout", cfg.Server.Timeout)
	case cfg.Server.RequestsPerSecond < 0:
		return invalid("server.requests_per_second", cfg.Server.RequestsPerSecond)
	case cfg.Server.RequestsPerSecond > 0 && cfg.Server.Burst < 1:
		return invalid("server.burst", cfg.Server.Burst)
	case cfg.Download.Retries < 0:
		return invalid("download.retries", cfg.Download.Retries)
	case cfg.Download.InitialBackoff < 0:
		return invalid("download.initial_backoff", cfg.Download.InitialBackoff)
	case cfg.Cache.MemoryEntries < 1:
		return invalid("cache.memory_entries", cfg.Cache.MemoryEntries)
	case cfg.Cache.GridEntries < 1:
		return invalid("cache.grid_entries", cfg.Cache.GridEntries)
	}
	return nil
}

func invalid(field string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "value out of range"), "field", field), "value", value)
}

func fromDomain(cfg domain.Config) Starmapfile {
	return Starmapfile{
		Server: ServerDTO{
			BaseURL:           cfg.Server.BaseURL,
			Timeout:           cfg.Server.Timeout.String(),
			RequestsPerSecond: cfg.Server.RequestsPerSecond,
			Burst:             cfg.Server.Burst,
		},
		Download: DownloadDTO{
			Retries:        cfg.Download.Retries,
			InitialBackoff: cfg.Download.InitialBackoff.String(),
		},
		Cache: CacheDTO{
			Dir:           cfg.Cache.Dir,
			MemoryEntries: cfg.Cache.MemoryEntries,
			GridEntries:   cfg.Cache.GridEntries,
		},
		Styles:    StylesDTO{Path: cfg.Styles.Path},
		Resources: ResourcesDTO{Sectors: cfg.Resources.Sectors},
		Log:       LogDTO{Level: cfg.Log.Level},
	}
}

func (f Starmapfile) toDomain() (domain.Config, error) {
	timeout, err := parseDuration("server.timeout", f.Server.Timeout)
	if err != nil {
		return domain.Config{}, err
	}
	backoff, err := parseDuration("download.initial_backoff", f.Download.InitialBackoff)
	if err != nil {
		return domain.Config{}, err
	}
	return domain.Config{
		Server: domain.ServerConfig{
			BaseURL:           f.Server.BaseURL,
			Timeout:           timeout,
			RequestsPerSecond: f.Server.RequestsPerSecond,
			Burst:             f.Server.Burst,
		},
		Download: domain.DownloadConfig{
			Retries:        f.Download.Retries,
			InitialBackoff: backoff,
		},
		Cache: domain.CacheConfig{
			Dir:           f.Cache.Dir,
			MemoryEntries: f.Cache.MemoryEntries,
			GridEntries:   f.Cache.GridEntries,
		},
		Styles:    domain.StylesConfig{Path: f.Styles.Path},
		Resources: domain.ResourcesConfig{Sectors: f.Resources.Sectors},
		Log:       domain.LogConfig{Level: f.Log.Level},
	}, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "field", field), "value", s)
	}
	return d, nil
}

// applyEnv overlays the STARMAP_* variables that are set.
func applyEnv(cfg *domain.Config) error {
	if v, ok := os.LookupEnv(envBaseURL); ok {
		cfg.Server.BaseURL = v
	}
	if v, ok := os.LookupEnv(envCacheDir); ok {
		cfg.Cache.Dir = v
	}
	if v, ok := os.LookupEnv(envStyles); ok {
		cfg.Styles.Path = v
	}
	if v, ok := os.LookupEnv(envSectors); ok {
		cfg.Resources.Sectors = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.Log.Level = v
	}

	var err error
	if v, ok := os.LookupEnv(envTimeout); ok {
		if cfg.Server.Timeout, err = parseDuration(envTimeout, v); err != nil {
			return err
		}
	}
	if v, ok := os.LookupEnv(envInitialBackoff); ok {
		if cfg.Download.InitialBackoff, err = parseDuration(envInitialBackoff, v); err != nil {
			return err
		}
	}
	if v, ok := os.LookupEnv(envRequestsPerSecond); ok {
		rps, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			return envError(envRequestsPerSecond, v, perr)
		}
		cfg.Server.RequestsPerSecond = rps
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{envBurst, &cfg.Server.Burst},
		{envRetries, &cfg.Download.Retries},
		{envMemoryEntries, &cfg.Cache.MemoryEntries},
		{envGridEntries, &cfg.Cache.GridEntries},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.name)
		if !ok {
			continue
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			return envError(e.name, v, perr)
		}
		*e.dst = n
	}
	return nil
}

func envError(name, value string, err error) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "field", name), "value", value)
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "starmap", "tiles")
}
