package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/livp123/epochline/internal/checks"
	"github.com/livp123/epochline/internal/utils/fileutil"
	"github.com/livp123/epochline/internal/utils/logger"
	apperrors "github.com/livp123/epochline/pkg/errors"
)

// Config is the optional epochline configuration file.
// Config 是可选的 epochline 配置文件。
type Config struct {
	Logging logger.LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig        `yaml:"metrics"`
	Checks  []checks.Definition  `yaml:"checks"`
}

// MetricsConfig controls the end-of-run metrics dump.
// MetricsConfig 控制运行结束时的指标输出。
type MetricsConfig struct {
	// Textfile: Prometheus 文本格式输出路径，为空则不输出
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in configuration.
// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "warn",
			Path:       DefaultLogPath,
			MaxSize:    10, // 10MB
			MaxBackups: 3,
			MaxAge:     30, // 30 days
			Compress:   true,
		},
	}
}

// Load reads path on top of the defaults. When explicit is false a missing
// file yields the defaults; otherwise it is an error.
// Load 在默认值基础上读取配置。explicit 为 false 时文件不存在则返回默认值。
func Load(path string, explicit bool) (*Config, error) {
	safePath := filepath.Clean(path)
	data, err := os.ReadFile(safePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return Default(), nil
			}
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConfigNotFound, safePath)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
// Parse 在默认值基础上解析 YAML 并校验，拒绝未知字段。
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks field values and compiles the record checks.
// Validate 校验字段取值并编译记录检查。
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return apperrors.NewConfigError("logging.level", c.Logging.Level)
	}
	if c.Logging.Enabled && c.Logging.Path == "" {
		c.Logging.Path = DefaultLogPath
	}
	if c.Logging.MaxSize < 0 {
		return apperrors.NewConfigError("logging.max_size", c.Logging.MaxSize)
	}
	if c.Logging.MaxBackups < 0 {
		return apperrors.NewConfigError("logging.max_backups", c.Logging.MaxBackups)
	}
	if c.Logging.MaxAge < 0 {
		return apperrors.NewConfigError("logging.max_age", c.Logging.MaxAge)
	}

	_, err := c.CompileChecks()
	return err
}

// CompileChecks compiles the configured record checks.
// CompileChecks 编译配置中的记录检查。
func (c *Config) CompileChecks() (*checks.Set, error) {
	return checks.Compile(c.Checks)
}

// WriteDefault writes DefaultConfigTemplate to path. An existing file is
// kept unless force is set.
// WriteDefault 将默认模板写入 path；除非 force 为 true，否则不覆盖已有文件。
func WriteDefault(path string, force bool) error {
	if fileutil.Exists(path) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return fileutil.AtomicWriteFile(path, []byte(DefaultConfigTemplate), 0644)
}
