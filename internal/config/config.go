package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields vitrin needs to reach the storefront API and
// persist guest state.
type Config struct {
	APIBaseURL  string
	DataDir     string
	PollSeconds int
}

const (
	defaultConfigPath  = "~/.config/vitrin/config.toml"
	defaultDataDir     = "~/.local/share/vitrin"
	defaultAPIBaseURL  = "http://127.0.0.1:8000/api"
	defaultPollSeconds = 5
)

// Load locates and parses the vitrin config, falling back to defaults when
// missing. A missing config file is not an error; vitrin works out of the
// box against a local API.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL:  defaultAPIBaseURL,
		DataDir:     mustExpand(defaultDataDir),
		PollSeconds: defaultPollSeconds,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL  string `toml:"api_base_url"`
		DataDir     string `toml:"data_dir"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if trimmed := strings.TrimSpace(raw.APIBaseURL); trimmed != "" {
		cfg.APIBaseURL = trimmed
	}
	if trimmed := strings.TrimSpace(raw.DataDir); trimmed != "" {
		cfg.DataDir = mustExpand(trimmed)
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
