// FILE: hydrolog/src/cmd/hydrolog/bootstrap.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"hydrolog/src/cmd/hydrolog/commands"
	"hydrolog/src/internal/config"
	"hydrolog/src/internal/version"

	"github.com/lixenwraith/log"
)

var errConfigNotFound = errors.New("config file not found")

// bootstrap loads configuration, starts the logger and wires the export
// components
func bootstrap(opts commands.BootOptions) (*commands.Runtime, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		if _, statErr := os.Stat(opts.ConfigPath); statErr != nil {
			return nil, fmt.Errorf("%w: %s", errConfigNotFound, opts.ConfigPath)
		}
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.Quiet {
		cfg.Quiet = true
	}
	if opts.LogLevel != "" {
		if _, err := parseLogLevel(opts.LogLevel); err != nil {
			return nil, fmt.Errorf("%w: invalid log-level: %s (valid: debug, info, warn, error)", commands.ErrUsage, opts.LogLevel)
		}
		cfg.Logging.Level = strings.ToLower(opts.LogLevel)
	}
	output.SetQuiet(cfg.Quiet)

	if err := initializeLogger(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("msg", "hydrolog starting",
		"version", version.Short(),
		"config_file", opts.ConfigPath,
		"log_output", cfg.Logging.Output)

	return commands.NewRuntime(cfg, logger), nil
}

// initializeLogger sets up the logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	var configArgs []string

	if cfg.Quiet {
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.InitWithDefaults(configArgs...)
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configureFileLogging(&configArgs, cfg)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true")
		configureFileLogging(&configArgs, cfg)
		configureConsoleTarget(&configArgs, cfg)

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if cfg.Logging.Console != nil && cfg.Logging.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", cfg.Logging.Console.Format))
	}

	return logger.InitWithDefaults(configArgs...)
}

func configureFileLogging(configArgs *[]string, cfg *config.Config) {
	if cfg.Logging.File == nil {
		return
	}
	*configArgs = append(*configArgs,
		fmt.Sprintf("directory=%s", cfg.Logging.File.Directory),
		fmt.Sprintf("name=%s", cfg.Logging.File.Name),
		fmt.Sprintf("max_size_mb=%d", cfg.Logging.File.MaxSizeMB),
		fmt.Sprintf("max_total_size_mb=%d", cfg.Logging.File.MaxTotalSizeMB))

	if cfg.Logging.File.RetentionHours > 0 {
		*configArgs = append(*configArgs,
			fmt.Sprintf("retention_period_hrs=%.1f", cfg.Logging.File.RetentionHours))
	}
}

func configureConsoleTarget(configArgs *[]string, cfg *config.Config) {
	target := "stderr"
	if cfg.Logging.Console != nil && cfg.Logging.Console.Target != "" {
		target = cfg.Logging.Console.Target
	}

	if target == "split" {
		*configArgs = append(*configArgs, "stdout_split_mode=true", "stdout_target=split")
	} else {
		*configArgs = append(*configArgs, fmt.Sprintf("stdout_target=%s", target))
	}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
