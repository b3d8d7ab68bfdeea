package config

const (
	defaultAppEnv          = "dev"
	defaultAppLogLevel     = "info"
	defaultAppHTTPAddr     = ":9920"
	defaultMarketREST      = "https://api.binance.com"
	defaultMarketTimeout   = 10
	defaultHistoryInterval = "1h"
	defaultHistoryLimit    = 100
	defaultAdvisorTimeout  = 20
	defaultAdvisorDeadline = 25
	defaultCacheTTL        = 120
	defaultCacheBucket     = 300
	defaultStorePath       = "data/predictions.db"
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Market.applyDefaults()
	c.Advisor.applyDefaults()
	c.Cache.applyDefaults()
	c.Store.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.HTTPAddr == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (m *MarketConfig) applyDefaults() {
	if m.RESTBaseURL == "" {
		m.RESTBaseURL = defaultMarketREST
	}
	if m.HTTPTimeoutSeconds <= 0 {
		m.HTTPTimeoutSeconds = defaultMarketTimeout
	}
	if m.HistoryInterval == "" {
		m.HistoryInterval = defaultHistoryInterval
	}
	if m.HistoryLimit <= 0 {
		m.HistoryLimit = defaultHistoryLimit
	}
}

func (a *AdvisorConfig) applyDefaults() {
	if a.DefaultTimeoutSeconds <= 0 {
		a.DefaultTimeoutSeconds = defaultAdvisorTimeout
	}
	if a.OverallDeadlineSeconds <= 0 {
		a.OverallDeadlineSeconds = defaultAdvisorDeadline
	}
}

func (c *CacheConfig) applyDefaults() {
	if c.TTLSeconds <= 0 {
		c.TTLSeconds = defaultCacheTTL
	}
	if c.BucketSeconds <= 0 {
		c.BucketSeconds = defaultCacheBucket
	}
}

func (s *StoreConfig) applyDefaults() {
	if s.Path == "" {
		s.Path = defaultStorePath
	}
}
