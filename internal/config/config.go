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

// Config captures the connection and filesystem settings tally needs.
type Config struct {
	DatabaseURL string
	FeedURL     string
	LogDir      string
	SessionPath string
}

const (
	defaultConfigPath  = "~/.config/tally/config.toml"
	defaultLogDir      = "~/.local/share/tally/logs"
	defaultDatabaseURL = "postgres://localhost:5432/tally"
	defaultFeedURL     = "ws://127.0.0.1:8484/feed"
	defaultSessionPath = "~/.config/tally/session.toml"
)

// Load locates and parses the tally config, falling back to defaults when the
// file is missing. Malformed TOML is a hard error; a typo must not silently
// point the app at the default database.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DatabaseURL: defaultDatabaseURL,
		FeedURL:     defaultFeedURL,
		LogDir:      defaultLogDir,
		SessionPath: defaultSessionPath,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LogDir = mustExpand(cfg.LogDir)
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
		DatabaseURL string `toml:"database_url"`
		FeedURL     string `toml:"feed_url"`
		LogDir      string `toml:"log_dir"`
		SessionPath string `toml:"session_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(raw.FeedURL); v != "" {
		cfg.FeedURL = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		cfg.SessionPath = v
	}
	cfg.LogDir = mustExpand(cfg.LogDir)

	return cfg, nil
}

// LogFilePath returns the path to the tally log file.
func (c Config) LogFilePath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/tally.log")
	}
	return filepath.Join(c.LogDir, "tally.log")
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
