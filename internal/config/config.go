// Package config provides configuration loading and structs for the kaitou server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Provider  ProviderConfig  `yaml:"provider"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	OCR       OCRConfig       `yaml:"ocr"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the corpus database, the vector index
// snapshot, and the solution-paper data directory.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	IndexPath    string `yaml:"index_path"`
	DataDir      string `yaml:"data_dir"`
}

// ProviderConfig holds OpenAI model settings. The API key itself comes
// from the environment variable named by APIKeyEnv, never from the file.
type ProviderConfig struct {
	APIKeyEnv       string  `yaml:"api_key_env"`
	EmbeddingModel  string  `yaml:"embedding_model"`
	CompletionModel string  `yaml:"completion_model"`
	Dimensions      int     `yaml:"dimensions"`
	MaxTokens       int     `yaml:"max_tokens"`
	Temperature     float32 `yaml:"temperature"`
	TimeoutSecs     int     `yaml:"timeout_secs"`
}

// RetrievalConfig holds retrieval and answer-extraction settings.
type RetrievalConfig struct {
	DefaultK         int      `yaml:"default_k"`
	EmbedConcurrency int      `yaml:"embed_concurrency"`
	Labels           []string `yaml:"labels"`
}

// OCRConfig holds Mathpix settings. Credentials come from the environment
// variables named here.
type OCRConfig struct {
	AppIDEnv    string `yaml:"app_id_env"`
	AppKeyEnv   string `yaml:"app_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// WatchConfig holds data-directory watch settings.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads and parses the config file at path, expands paths, and
// applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.IndexPath = expandPath(cfg.Storage.IndexPath, configDir)
	cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
