package provider

import (
	"fmt"
	"strings"
	"time"

	"kairos/internal/logger"
)

// ModelCfg describes one configured advisory endpoint. Order in the config
// list is fallback order (primary first, local last).
type ModelCfg struct {
	ID      string
	APIURL  string
	APIKey  string
	Model   string
	Enabled bool
	Headers map[string]string

	TimeoutSeconds int
	MaxRetries     int
}

// BuildChain assembles the ordered provider fallback chain from config.
// Disabled entries are skipped without disturbing the order of the rest.
func BuildChain(models []ModelCfg, defaultTimeout time.Duration) []Provider {
	out := make([]Provider, 0, len(models))
	for _, m := range models {
		if !m.Enabled {
			continue
		}
		id := strings.TrimSpace(m.ID)
		if id == "" {
			id = strings.TrimSpace(m.Model)
			if id == "" {
				id = fmt.Sprintf("provider-%d", len(out)+1)
			}
			logger.Warnf("advisor model without id, generated %q", id)
		}
		client := &ChatClient{
			BaseURL:      m.APIURL,
			APIKey:       m.APIKey,
			Model:        m.Model,
			MaxRetries:   m.MaxRetries,
			ExtraHeaders: m.Headers,
		}
		if m.TimeoutSeconds > 0 {
			client.Timeout = time.Duration(m.TimeoutSeconds) * time.Second
		} else if defaultTimeout > 0 {
			client.Timeout = defaultTimeout
		}
		out = append(out, NewChatProvider(id, true, client))
	}
	return out
}
