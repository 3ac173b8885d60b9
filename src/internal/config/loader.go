// FILE: hydrolog/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

const envPrefix = "HYDROLOG_"

func defaults() *Config {
	return &Config{
		Quiet:    false,
		Progress: "auto",
		Logging:  DefaultLogConfig(),
		Input: InputConfig{
			Extensions:      []string{".txt", ".dat", ".csv"},
			MaxSizeMB:       100,
			BinaryThreshold: 0.05,
		},
		Export: ExportConfig{
			Mode:              "single-chronological",
			IncludeHeaders:    true,
			AddSuffix:         true,
			PreserveFilenames: true,
			FillStartDate:     false,
			OutputFormat:      "tab",
			OutputDir:         ".",
		},
		Watch: WatchConfig{
			DebounceMs:    500,
			MinIntervalMs: 2000,
		},
	}
}

// Load resolves configuration from defaults, the config file and
// HYDROLOG_* environment variables, in increasing priority.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile is Load with an explicit config file path
func LoadFile(configPath string) (*Config, error) {
	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix(envPrefix).
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		// Missing config file is not an error, defaults apply
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := handleInputsEnv(cfg); err != nil {
		return nil, err
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = envPrefix + env
	return env
}

// GetConfigPath resolves the config file location
func GetConfigPath() string {
	if configFile := os.Getenv("HYDROLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("HYDROLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("HYDROLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "hydrolog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "hydrolog.toml")
	}

	return "hydrolog.toml"
}

// handleInputsEnv maps HYDROLOG_EXPORT_INPUTS, a comma-separated list,
// onto export.inputs.
func handleInputsEnv(cfg *lconfig.Config) error {
	inputsStr := os.Getenv("HYDROLOG_EXPORT_INPUTS")
	if inputsStr == "" {
		return nil
	}

	var inputs []string
	for _, part := range strings.Split(inputsStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			inputs = append(inputs, p)
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("HYDROLOG_EXPORT_INPUTS contains no paths: %q", inputsStr)
	}
	cfg.Set("export.inputs", inputs)
	return nil
}
