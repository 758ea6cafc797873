package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	envMaxListSize = "LINKSTORE_MAX_LIST_SIZE"
	envEviction    = "LINKSTORE_EVICTION"
	envLogLevel    = "LINKSTORE_LOG_LEVEL"
)

type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type StoreConfig struct {
	MaxListSize    uint64 `yaml:"max_list_size"`
	EvictionPolicy string `yaml:"eviction_policy"` // "no eviction" or "evict oldest"
}

type LoggingConfig struct {
	Level       string   `yaml:"level"`
	OutputPaths []string `yaml:"output_paths"`
}

type MonitoringConfig struct {
	Enabled       bool          `yaml:"enabled"`
	StatsInterval time.Duration `yaml:"stats_interval"`  // how long collected stats stay cached
	CPUSampleTime time.Duration `yaml:"cpu_sample_time"` // window cpu load is measured over
}

type configOption = func(c *Config)

func WithMaxListSize(max uint64) configOption {
	return func(c *Config) {
		c.Store.MaxListSize = max
	}
}

func WithEvictionPolicy(policy string) configOption {
	return func(c *Config) {
		c.Store.EvictionPolicy = policy
	}
}

func WithLogLevel(level string) configOption {
	return func(c *Config) {
		c.Logging.Level = level
	}
}

func WithOutputPaths(paths ...string) configOption {
	return func(c *Config) {
		c.Logging.OutputPaths = paths
	}
}

func WithMonitoring(enabled bool) configOption {
	return func(c *Config) {
		c.Monitoring.Enabled = enabled
	}
}

func DefaultConfig(options ...configOption) *Config {
	c := &Config{
		Store: StoreConfig{
			MaxListSize:    500,
			EvictionPolicy: "no eviction",
		},
		Logging: LoggingConfig{
			Level:       "info",
			OutputPaths: []string{"stdout"},
		},
		Monitoring: MonitoringConfig{
			Enabled:       true,
			StatsInterval: 750 * time.Millisecond,
			CPUSampleTime: 200 * time.Millisecond,
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// FromYAML decodes r over the defaults. name is only used to check the file
// extension and in error messages.
func FromYAML(name string, r io.Reader) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format %q for %s", ext, name)
	}
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return c, nil
}

// FromFile opens path and decodes it with FromYAML.
func FromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromYAML(filepath.Base(path), f)
}

// LoadEnv loads .env style files into the process environment. Missing
// files are not an error when no path was given explicitly.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	}
	return godotenv.Load(paths...)
}

// ApplyEnv overrides c with any LINKSTORE_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(envMaxListSize); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxListSize, err)
		}
		c.Store.MaxListSize = n
	}
	if v, ok := os.LookupEnv(envEviction); ok {
		c.Store.EvictionPolicy = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		if _, err := zapcore.ParseLevel(v); err != nil {
			return fmt.Errorf("%s: %w", envLogLevel, err)
		}
		c.Logging.Level = v
	}
	return nil
}

// BuildLogger builds the json zap logger described by the logging section.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	outputs := c.Logging.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:       "timeStamp",
			LevelKey:      "level",
			MessageKey:    "message",
			CallerKey:     "source Code",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,

			EncodeLevel: zapcore.CapitalLevelEncoder,
			EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(t.Format("2006-01-02 15:04:05"))
			},
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	return config.Build()
}
