package config

// Starmapfile represents the structure of the starmap.yaml configuration file.
// Durations are Go duration strings such as "30s".
type Starmapfile struct {
	Server    ServerDTO    `yaml:"server"`
	Download  DownloadDTO  `yaml:"download"`
	Cache     CacheDTO     `yaml:"cache"`
	Styles    StylesDTO    `yaml:"styles"`
	Resources ResourcesDTO `yaml:"resources"`
	Log       LogDTO       `yaml:"log"`
}

// ServerDTO describes the remote map service.
type ServerDTO struct {
	BaseURL           string  `yaml:"base_url"`
	Timeout           string  `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DownloadDTO holds the retry policy.
type DownloadDTO struct {
	Retries        int    `yaml:"retries"`
	InitialBackoff string `yaml:"initial_backoff"`
}

// CacheDTO sizes the caches.
type CacheDTO struct {
	Dir           string `yaml:"dir"`
	MemoryEntries int    `yaml:"memory_entries"`
	GridEntries   int    `yaml:"grid_entries"`
}

// StylesDTO selects the stylesheet.
type StylesDTO struct {
	Path string `yaml:"path"`
}

// ResourcesDTO locates the map data files.
type ResourcesDTO struct {
	Sectors string `yaml:"sectors"`
}

// LogDTO selects the log level.
type LogDTO struct {
	Level string `yaml:"level"`
}
