package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/revelaction/senseparse/render"
)

// DefaultPath is read when no path is given and SENSEPARSE_CONFIG is unset.
const DefaultPath = "./senseparse.yaml"

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Render  RenderConfig  `yaml:"render"`
	Query   QueryConfig   `yaml:"query"`
}

// StorageConfig holds the document repository location: a directory of
// JSON docs or a SQLite file.
type StorageConfig struct {
	DocPath string `yaml:"doc_path" env:"SENSEPARSE_DOC_PATH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SENSEPARSE_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"SENSEPARSE_LOG_FORMAT" env-default:"text"`
}

// RenderConfig holds terminal output settings.
type RenderConfig struct {
	NoColor bool   `yaml:"no_color" env:"SENSEPARSE_NO_COLOR"`
	Format  string `yaml:"format"   env:"SENSEPARSE_FORMAT"   env-default:"best"`
}

// QueryConfig holds sense lookup settings.
type QueryConfig struct {
	// maximum hits fetched per lookup
	Limit int `yaml:"limit" env:"SENSEPARSE_QUERY_LIMIT" env-default:"2000"`
	// hits fetched per repository call
	BatchSize int `yaml:"batch_size" env:"SENSEPARSE_QUERY_BATCH_SIZE" env-default:"500"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file is path, or SENSEPARSE_CONFIG when path is empty, with
// fallback DefaultPath. A missing file is an error only if it was named
// explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("SENSEPARSE_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded values. Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	if !render.IsSupportedFormat(c.Render.Format) {
		return fmt.Errorf("render.format must be one of %s (got %q)", strings.Join(render.SupportedFormats(), ", "), c.Render.Format)
	}

	if c.Query.Limit <= 0 {
		return fmt.Errorf("query.limit must be > 0 (got %d)", c.Query.Limit)
	}
	if c.Query.BatchSize <= 0 {
		return fmt.Errorf("query.batch_size must be > 0 (got %d)", c.Query.BatchSize)
	}

	return nil
}
