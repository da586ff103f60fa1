// Package config provides configuration management for affinity.
// Settings come from defaults, an optional YAML file and AFFINITY_*
// environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/affinityhq/affinity/pkg/affinity"
	"github.com/affinityhq/affinity/pkg/models"
)

// DefaultFile is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFile = "affinity.yaml"

// Defaults for the query and watch settings.
const (
	DefaultTopK            = 5
	DefaultTopTerms        = 10
	DefaultClusters        = 3
	DefaultWatchDebounceMS = 500
)

// Config holds the application configuration.
type Config struct {
	// Corpus settings
	CorpusPath string `yaml:"corpus_path"`

	// Vectorizer settings
	MaxFeatures int      `yaml:"max_features"`
	MinDF       int      `yaml:"min_df"`
	MaxDF       float64  `yaml:"max_df"`
	Stopwords   []string `yaml:"stopwords,omitempty"`

	// Clustering settings
	Clusters int    `yaml:"clusters"`
	Method   string `yaml:"method"`
	Seed     int64  `yaml:"seed"`
	Restarts int    `yaml:"restarts"`

	// Query settings
	TopK      int `yaml:"top_k"`
	TopTerms  int `yaml:"top_terms"`
	CacheSize int `yaml:"cache_size"`

	// Watch settings
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with default values.
func Default() *Config {
	eng := affinity.DefaultConfig()
	return &Config{
		MaxFeatures:     eng.MaxFeatures,
		MinDF:           eng.MinDF,
		MaxDF:           eng.MaxDF,
		Clusters:        DefaultClusters,
		Method:          string(models.MethodKMeans),
		Seed:            eng.Seed,
		Restarts:        eng.Restarts,
		TopK:            DefaultTopK,
		TopTerms:        DefaultTopTerms,
		CacheSize:       eng.CacheSize,
		WatchDebounceMS: DefaultWatchDebounceMS,
		LogLevel:        "info",
	}
}

// Load reads the config file at path, merging it over the defaults and
// then applying environment overrides. A missing file is an error; use
// LoadDefault for the optional working-directory lookup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadDefault looks for DefaultFile in the working directory, then for
// config.yaml under the user config directory, falling back to
// defaults plus environment overrides when neither exists.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "affinity", "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := Default()
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate reports the first setting outside its legal range.
func (c *Config) Validate() error {
	if !models.Method(c.Method).Valid() {
		return fmt.Errorf("config: unknown clustering method %q", c.Method)
	}
	if c.MaxDF <= 0 || c.MaxDF > 1 {
		return fmt.Errorf("config: max_df %v outside (0, 1]", c.MaxDF)
	}
	if c.Clusters < 1 {
		return fmt.Errorf("config: clusters must be at least 1, got %d", c.Clusters)
	}
	return nil
}

// Engine maps the file settings onto the engine configuration.
func (c *Config) Engine() affinity.Config {
	return affinity.Config{
		MaxFeatures: c.MaxFeatures,
		MinDF:       c.MinDF,
		MaxDF:       c.MaxDF,
		Stopwords:   c.Stopwords,
		Seed:        c.Seed,
		Restarts:    c.Restarts,
		CacheSize:   c.CacheSize,
	}
}

// WatchDebounce returns the watch debounce window as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// applyEnv overrides settings from AFFINITY_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("AFFINITY_CORPUS"); v != "" {
		c.CorpusPath = v
	}
	if v, ok := envInt("AFFINITY_MAX_FEATURES"); ok {
		c.MaxFeatures = v
	}
	if v, ok := envInt("AFFINITY_MIN_DF"); ok {
		c.MinDF = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("AFFINITY_MAX_DF"), 64); err == nil {
		c.MaxDF = v
	}
	if v, ok := envInt("AFFINITY_CLUSTERS"); ok {
		c.Clusters = v
	}
	if v := os.Getenv("AFFINITY_METHOD"); v != "" {
		c.Method = v
	}
	if v, err := strconv.ParseInt(os.Getenv("AFFINITY_SEED"), 10, 64); err == nil {
		c.Seed = v
	}
	if v, ok := envInt("AFFINITY_RESTARTS"); ok {
		c.Restarts = v
	}
	if v, ok := envInt("AFFINITY_TOP_K"); ok {
		c.TopK = v
	}
	if v, ok := envInt("AFFINITY_TOP_TERMS"); ok {
		c.TopTerms = v
	}
	if v, ok := envInt("AFFINITY_CACHE_SIZE"); ok {
		c.CacheSize = v
	}
	if v, ok := envInt("AFFINITY_WATCH_DEBOUNCE_MS"); ok {
		c.WatchDebounceMS = v
	}
	if v := os.Getenv("AFFINITY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("AFFINITY_STOPWORDS"); v != "" {
		c.Stopwords = splitTrim(v)
	}
}

func envInt(key string) (int, bool) {
	v, err := strconv.Atoi(os.Getenv(key))
	return v, err == nil
}

// splitTrim splits a comma-separated string and trims whitespace.
func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
