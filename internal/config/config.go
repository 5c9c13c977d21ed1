package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level configuration for the analytics tool.
type Config struct {
	Dataset DatasetConfig `koanf:"dataset"`
	Ingest  IngestConfig  `koanf:"ingest"`
	Report  ReportConfig  `koanf:"report"`
	Server  ServerConfig  `koanf:"server"`
}

// DatasetConfig locates the transaction files.
type DatasetConfig struct {
	// Path is the directory holding one transaction file per day.
	Path string `koanf:"path"`
}

// IngestConfig controls how the dataset is read.
type IngestConfig struct {
	Workers       int  `koanf:"workers"`
	SkipMalformed bool `koanf:"skip_malformed"`
}

// ReportConfig controls the rendered output.
type ReportConfig struct {
	Format string `koanf:"format"` // "text", "json" or "yaml"
}

// ServerConfig holds the optional metrics HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Mode string `koanf:"mode"` // "debug" or "release"
}

// ReportFormats lists the accepted report.format values.
var ReportFormats = []string{"text", "json", "yaml"}

// Load builds the configuration from defaults, an optional YAML file
// and environment variables, in that order of precedence (later wins).
// An empty configPath skips the file layer. Environment overrides use
// the MONIESHOP_ prefix with "__" as the key separator, e.g.
// MONIESHOP_DATASET__PATH=/data/2025.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"dataset.path":          "./data",
		"ingest.workers":        4,
		"ingest.skip_malformed": false,
		"report.format":         "text",
		"server.host":           "0.0.0.0",
		"server.port":           8080,
		"server.mode":           "release",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("MONIESHOP_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "MONIESHOP_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path must not be empty")
	}
	valid := false
	for _, f := range ReportFormats {
		if c.Report.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("report.format %q is not one of %v", c.Report.Format, ReportFormats)
	}
	if c.Ingest.Workers < 0 {
		return fmt.Errorf("ingest.workers must not be negative")
	}
	return nil
}
