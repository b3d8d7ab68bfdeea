package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if err := c.Advisor.validate(); err != nil {
		return err
	}
	if err := c.Cache.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AdvisorConfig) validate() error {
	seen := make(map[string]bool, len(a.Models))
	for i, m := range a.Models {
		if !m.Enabled {
			continue
		}
		if strings.TrimSpace(m.Model) == "" {
			return fmt.Errorf("advisor.models[%d] missing model name", i)
		}
		if strings.TrimSpace(m.APIURL) == "" {
			return fmt.Errorf("advisor.models[%d] (%s) missing api_url", i, m.Model)
		}
		id := strings.TrimSpace(m.ID)
		if id != "" && seen[id] {
			return fmt.Errorf("advisor.models duplicate id %q", id)
		}
		seen[id] = true
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if c.TTLSeconds > c.BucketSeconds {
		return fmt.Errorf("cache.ttl_seconds (%d) must not exceed cache.bucket_seconds (%d)", c.TTLSeconds, c.BucketSeconds)
	}
	return nil
}
