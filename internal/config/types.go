package config

// Config is the root configuration for kairos.
type Config struct {
	App     AppConfig     `toml:"app"`
	Market  MarketConfig  `toml:"market"`
	Advisor AdvisorConfig `toml:"advisor"`
	Cache   CacheConfig   `toml:"cache"`
	Store   StoreConfig   `toml:"store"`
}

type AppConfig struct {
	Env             string `toml:"env"`
	LogLevel        string `toml:"log_level"`
	HTTPAddr        string `toml:"http_addr"`
	LogPath         string `toml:"log_path"`
	AdvisoryLogPath string `toml:"advisory_log_path"`
	AdvisoryDump    bool   `toml:"advisory_dump_payload"`
}

type MarketConfig struct {
	RESTBaseURL        string `toml:"rest_base_url"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	HistoryInterval    string `toml:"history_interval"`
	HistoryLimit       int    `toml:"history_limit"`
}

// ModelConfig is one advisory endpoint; list order is fallback order
// (primary first, local last).
type ModelConfig struct {
	ID             string            `toml:"id"`
	APIURL         string            `toml:"api_url"`
	APIKey         string            `toml:"api_key"`
	Model          string            `toml:"model"`
	Enabled        bool              `toml:"enabled"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
	MaxRetries     int               `toml:"max_retries"`
	Headers        map[string]string `toml:"headers"`
}

type AdvisorConfig struct {
	Models                 []ModelConfig `toml:"models"`
	DefaultTimeoutSeconds  int           `toml:"default_timeout_seconds"`
	OverallDeadlineSeconds int           `toml:"overall_deadline_seconds"`
	ProfilePath            string        `toml:"profile_path"`
}

type CacheConfig struct {
	TTLSeconds    int `toml:"ttl_seconds"`
	BucketSeconds int `toml:"bucket_seconds"`
}

type StoreConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}
