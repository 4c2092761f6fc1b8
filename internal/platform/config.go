package platform

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration for the notes server.
//
// Tunables are layered: YAML file, then NOTES_* environment variables, then
// command-line flags (applied by the caller). Host, Port and CacheDir are
// set by the caller from its required flags; neither layer reads them.
type Config struct {
	Host     string `yaml:"-"`
	Port     int    `yaml:"-"`
	CacheDir string `yaml:"-"`

	MustExist bool `yaml:"must_exist" env:"NOTES_MUST_EXIST"`

	// AuditEvents logs every observed note change while serving.
	AuditEvents bool `yaml:"audit_events" env:"NOTES_AUDIT_EVENTS"`

	LogLevel  string `yaml:"log_level" env:"NOTES_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"NOTES_LOG_FORMAT"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"NOTES_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"NOTES_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"NOTES_SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"NOTES_MAX_UPLOAD_BYTES"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       "text",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxUploadBytes:  10 << 20,
	}
}

// LoadConfig starts from DefaultConfig, applies the optional YAML file at
// path and overlays the environment. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every missing or out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range 1-65535", c.Port))
	}
	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache directory is required"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
