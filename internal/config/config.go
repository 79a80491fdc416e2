// Package config loads reviewctl defaults from YAML files, .env files and
// REVIEWCTL_* environment variables. Flags always win over everything here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds tool-level defaults.
type Config struct {
	// Editor is the command used to open the generated prompt.
	Editor string `yaml:"editor" env:"REVIEWCTL_EDITOR"`
	// ChatCommand is the editor command id used to focus the assistant chat panel.
	ChatCommand string `yaml:"chatCommand" env:"REVIEWCTL_CHAT_COMMAND"`
	// OutputDir is where prompt files are written when --output is not given.
	OutputDir string `yaml:"outputDir" env:"REVIEWCTL_OUTPUT_DIR"`
	// Repo is the fallback repository slug when neither the URL nor --repo provide one.
	Repo string `yaml:"repo" env:"REVIEWCTL_REPO"`
	// Copy enables clipboard copy by default.
	Copy bool `yaml:"copy" env:"REVIEWCTL_COPY"`
	// LogLevel is the default log level when --log-level is not set.
	LogLevel string `yaml:"logLevel" env:"REVIEWCTL_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor:      "code",
		ChatCommand: "workbench.panel.chat.view.copilot.focus",
		LogLevel:    "info",
	}
}

// Load builds the effective configuration: built-in defaults, then the first
// config file found (explicit path, ./reviewctl.yaml, the user config dir),
// then a .env file in the working directory, then REVIEWCTL_* variables.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := resolveFile(path)
	if err != nil {
		return cfg, err
	}
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return cfg, fmt.Errorf("read config %q: %w", file, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", file, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment overrides: %w", err)
	}
	return cfg, nil
}

// resolveFile picks the config file to read. An explicit path must exist;
// the default candidates are optional.
func resolveFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %q: %w", path, err)
		}
		return path, nil
	}

	candidates := []string{"reviewctl.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "reviewctl", "config.yaml"))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// loadDotEnv loads a .env file from the working directory when present.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
