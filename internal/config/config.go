package config

// Configuration loading and validation for zbframe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Xarlan/zigbee/internal/errors"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "zbframe.yaml"

// Output formats.
const (
	FormatHex  = "hex"
	FormatJSON = "json"
	FormatDump = "dump"
)

// OutputConfig controls how built frames are printed
type OutputConfig struct {
	Format string `yaml:"format"` // "hex", "json" or "dump"
	FCS    bool   `yaml:"fcs"`    // append the 802.15.4 FCS to hex and pcap output
	Color  bool   `yaml:"color"`  // style dumps for a terminal
}

// LoggingConfig mirrors the logger options
type LoggingConfig struct {
	Level    string `yaml:"level"`               // silent, error, info, verbose, debug
	File     string `yaml:"file,omitempty"`      // optional log file
	Format   string `yaml:"format"`              // "text" or "json"
	LogEvery int    `yaml:"log_every,omitempty"` // LogFrame console sampling, 1 = every frame
}

// PcapConfig controls capture output
type PcapConfig struct {
	Snaplen int `yaml:"snaplen"`
}

// Config is the zbframe configuration file
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Pcap    PcapConfig    `yaml:"pcap"`
}

// CreateDefaultConfig returns the configuration written on first run
func CreateDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatHex
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.LogEvery <= 0 {
		cfg.Logging.LogEvery = 1
	}
	if cfg.Pcap.Snaplen == 0 {
		cfg.Pcap.Snaplen = 65535
	}
}

// WriteDefaultConfig writes a default configuration to path
func WriteDefaultConfig(path string) error {
	cfg := CreateDefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfig loads the configuration from a YAML file.
// If the file doesn't exist and autoCreate is true, it will create a default config file
func LoadConfig(path string, autoCreate bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if autoCreate {
				if err := WriteDefaultConfig(path); err != nil {
					return nil, fmt.Errorf("create default config: %w", err)
				}
				data, err = os.ReadFile(path)
				if err != nil {
					return nil, errors.WrapConfigError(
						fmt.Errorf("read created config file: %w", err),
						path,
					)
				}
			} else {
				return nil, errors.WrapConfigError(
					fmt.Errorf("config file not found: %s", path),
					path,
				)
			}
		} else {
			return nil, errors.WrapConfigError(
				fmt.Errorf("read config file: %w", err),
				path,
			)
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("parse YAML: %w", err), path)
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}

	return &cfg, nil
}

// ValidateConfig validates a configuration
func ValidateConfig(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatHex, FormatJSON, FormatDump:
	default:
		return fmt.Errorf("output.format must be %s, %s or %s, got %q", FormatHex, FormatJSON, FormatDump, cfg.Output.Format)
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "silent", "quiet", "error", "info", "verbose", "debug":
	default:
		return fmt.Errorf("logging.level %q is not one of silent, error, info, verbose, debug", cfg.Logging.Level)
	}

	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.LogEvery < 1 {
		return fmt.Errorf("logging.log_every must be at least 1")
	}

	if cfg.Pcap.Snaplen < 0 || cfg.Pcap.Snaplen > 262144 {
		return fmt.Errorf("pcap.snaplen must be in 1..262144, got %d", cfg.Pcap.Snaplen)
	}

	return nil
}
