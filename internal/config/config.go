package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/folio/internal/catalog"
)

// Config captures everything folio reads at startup.
type Config struct {
	Endpoint    string
	Timeout     time.Duration // zero disables the request timeout
	Theme       string
	Direction   string // "ltr" or "rtl"
	LogFile     string // empty disables the diagnostic log
	MetricsAddr string // empty disables the metrics listener
}

const (
	defaultConfigPath = "~/.config/folio/config.toml"
	defaultLogFile    = "~/.local/state/folio/folio.log"
	defaultTheme      = "Blossom"
	defaultDirection  = "ltr"
	defaultTimeout    = 30 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint:  catalog.DefaultEndpoint,
		Timeout:   defaultTimeout,
		Theme:     defaultTheme,
		Direction: defaultDirection,
		LogFile:   mustExpand(defaultLogFile),
	}
}

type rawConfig struct {
	Endpoint    string `toml:"endpoint" yaml:"endpoint"`
	Timeout     string `toml:"timeout" yaml:"timeout"`
	Theme       string `toml:"theme" yaml:"theme"`
	Direction   string `toml:"direction" yaml:"direction"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
	MetricsAddr string `toml:"metrics_addr" yaml:"metrics_addr"`
}

// Load locates and parses the folio config, falling back to defaults when
// missing. Paths ending in .yaml or .yml are parsed as YAML, anything else as
// TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(raw.Direction); v != "" {
		cfg.Direction = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	switch c.Direction {
	case "", "ltr", "rtl":
	default:
		return fmt.Errorf("direction must be ltr or rtl, got %q", c.Direction)
	}
	return nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
