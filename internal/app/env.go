package app

import (
	"fmt"
	"io"
	"os"

	"github.com/Xarlan/zigbee/internal/config"
	"github.com/Xarlan/zigbee/internal/logging"
)

// OutputOverrides are command-line values that win over the config file.
// Empty strings and false leave the config value in place.
type OutputOverrides struct {
	Format   string
	FCS      bool
	NoColor  bool
	LogLevel string
}

type environment struct {
	cfg    *config.Config
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

// resolveConfig loads path, or zbframe.yaml from the working directory when
// path is empty and that file exists. Otherwise defaults apply.
func resolveConfig(path string) (*config.Config, string, error) {
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err != nil {
			return config.CreateDefaultConfig(), "", nil
		}
		path = config.DefaultPath
	}
	cfg, err := config.LoadConfig(path, false)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func openEnvironment(command, configPath string, over OutputOverrides, stdout, stderr io.Writer) (*environment, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg, path, err := resolveConfig(configPath)
	if err != nil {
		return nil, err
	}
	if over.Format != "" {
		cfg.Output.Format = over.Format
	}
	if over.FCS {
		cfg.Output.FCS = true
	}
	if over.NoColor {
		cfg.Output.Color = false
	}
	if over.LogLevel != "" {
		cfg.Logging.Level = over.LogLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLoggerWithOptions(level, cfg.Logging.File, cfg.Logging.Format, cfg.Logging.LogEvery)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	// Frame output owns stdout; diagnostics go to stderr.
	logger.SetOutput(stderr, stderr)
	logger.LogStartup(command, path)

	return &environment{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}, nil
}

func (e *environment) Close() {
	_ = e.logger.Close()
}
