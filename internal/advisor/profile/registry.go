package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"kairos/internal/logger"
)

// Profile holds the prompt material and the response schema used when
// talking to advisory providers.
type Profile struct {
	SystemTemplate string         `yaml:"system_template"`
	ResponseSchema map[string]any `yaml:"response_schema"`

	schemaCompiled *jsonschema.Schema
}

// Schema returns the compiled response schema, or nil when the profile
// carries none (validation is then skipped).
func (p Profile) Schema() *jsonschema.Schema { return p.schemaCompiled }

type fileConfig struct {
	Advisory Profile `yaml:"advisory"`
}

// Snapshot is the published view of the registry at one load.
type Snapshot struct {
	Version  int64
	LoadedAt time.Time
	Profile  Profile
}

// Registry serves the advisory profile, reloading it when the backing YAML
// file changes on disk. With an empty path it serves the built-in default.
type Registry struct {
	path string

	mu       sync.RWMutex
	snapshot Snapshot
}

func NewRegistry(path string) (*Registry, error) {
	r := &Registry{path: strings.TrimSpace(path)}
	if r.path == "" {
		r.install(defaultProfile())
		return r, nil
	}
	if err := r.reload(); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(r.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read advisory profile failed: %w", err)
	}
	v.OnConfigChange(func(evt fsnotify.Event) {
		if err := r.reload(); err != nil {
			logger.Errorf("advisory profile reload failed: %v", err)
		}
	})
	v.WatchConfig()
	return r, nil
}

// Current returns the active profile.
func (r *Registry) Current() Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot.Profile
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

func (r *Registry) reload() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read advisory profile failed: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parse advisory profile failed: %w", err)
	}
	p := cfg.Advisory
	if strings.TrimSpace(p.SystemTemplate) == "" {
		p.SystemTemplate = defaultProfile().SystemTemplate
	}
	if len(p.ResponseSchema) == 0 {
		p.ResponseSchema = defaultResponseSchema()
	}
	compiled, err := compileSchema(p.ResponseSchema)
	if err != nil {
		logger.Errorf("advisory response schema compile failed: %v", err)
	} else {
		p.schemaCompiled = compiled
	}
	r.install(p)
	logger.Infof("advisory profile loaded from %s", filepath.Base(r.path))
	return nil
}

func (r *Registry) install(p Profile) {
	r.mu.Lock()
	r.snapshot = Snapshot{
		Version:  r.snapshot.Version + 1,
		LoadedAt: time.Now(),
		Profile:  p,
	}
	r.mu.Unlock()
}

func compileSchema(data map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("advisory.json", strings.NewReader(string(raw))); err != nil {
		return nil, err
	}
	return compiler.Compile("advisory.json")
}

func defaultProfile() Profile {
	p := Profile{
		SystemTemplate: defaultSystemTemplate,
		ResponseSchema: defaultResponseSchema(),
	}
	if compiled, err := compileSchema(p.ResponseSchema); err == nil {
		p.schemaCompiled = compiled
	}
	return p
}

const defaultSystemTemplate = `You are a quantitative trading analyst reviewing a machine-generated
signal persistence forecast. Given the signal, the market context and the
model's raw horizon probabilities, reply ONLY with a JSON object:
{"adjustment": <number between -0.2 and 0.2>,
 "reasoning": "<one paragraph>",
 "confidence": <number between 0 and 1>,
 "riskFactors": ["..."],
 "opportunityFactors": ["..."]}
The adjustment shifts every horizon probability; stay conservative.`

func defaultResponseSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"adjustment", "confidence"},
		"properties": map[string]any{
			"adjustment": map[string]any{
				"type":    "number",
				"minimum": -0.2,
				"maximum": 0.2,
			},
			"reasoning":  map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"riskFactors": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"opportunityFactors": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}
