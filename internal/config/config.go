package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	dataDirEnv  = "AITRENDS_DATA_DIR"
	matcherEnv  = "AITRENDS_MATCHER"
	logLevelEnv = "AITRENDS_LOG_LEVEL"

	defaultRegistry = "THEME_REGISTRY.json"
	defaultHistory  = "trend_history.json"
	defaultMatcher  = "substring"
	defaultLogLevel = "info"
)

type Source struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

type Config struct {
	DataDir       string   `yaml:"data_dir"`
	ThemeRegistry string   `yaml:"theme_registry"`
	History       string   `yaml:"history"`
	Matcher       string   `yaml:"matcher"`
	LogLevel      string   `yaml:"log_level"`
	Sources       []Source `yaml:"sources"`
}

// Resolve joins a relative path with DataDir. Absolute paths are returned as is.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.DataDir == "" {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// RegistryPath returns the resolved theme registry path.
func (c *Config) RegistryPath() string {
	if c.ThemeRegistry == "" {
		return c.Resolve(defaultRegistry)
	}
	return c.Resolve(c.ThemeRegistry)
}

// HistoryPath returns the resolved history log path.
func (c *Config) HistoryPath() string {
	if c.History == "" {
		return c.Resolve(defaultHistory)
	}
	return c.Resolve(c.History)
}

func (c *Config) MatcherName() string {
	if c.Matcher == "" {
		return defaultMatcher
	}
	return c.Matcher
}

func (c *Config) Level() string {
	if c.LogLevel == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			s.Path = c.Resolve(s.Path)
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) SourceNames() []string {
	var names []string
	for _, s := range c.EnabledSources() {
		names = append(names, s.Name)
	}
	return names
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "aitrends", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, or the XDG default when path is empty.
// A missing file yields the embedded defaults, which are also written to
// path so they can be edited. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		cfg, err := loadDefaults()
		if err != nil {
			return nil, err
		}
		// Non-fatal: the embedded defaults still apply.
		_ = writeDefaults(path)
		cfg.applyEnvOverrides()
		return cfg, validate(cfg)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(dataDirEnv); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(matcherEnv); v != "" {
		c.Matcher = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	validMatchers := map[string]bool{"": true, "substring": true, "word": true}
	if !validMatchers[strings.ToLower(cfg.Matcher)] {
		return fmt.Errorf("unknown matcher %q (valid: substring, word)", cfg.Matcher)
	}

	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}

	seen := map[string]bool{}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.Path == "" {
			return fmt.Errorf("source %q: path is required", s.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
