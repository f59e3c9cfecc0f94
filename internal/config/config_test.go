package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  database_path: ./data/corpus.db
  index_path: /var/lib/kaitou/flat.bin
provider:
  completion_model: gpt-4-turbo
  dimensions: 3072
retrieval:
  default_k: 5
  labels: ["A", "B", "C", "D"]
watch:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug not set")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Provider.CompletionModel != "gpt-4-turbo" || cfg.Provider.Dimensions != 3072 {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.Retrieval.DefaultK != 5 {
		t.Errorf("default_k = %d", cfg.Retrieval.DefaultK)
	}
	if len(cfg.Retrieval.Labels) != 4 || cfg.Retrieval.Labels[0] != "A" {
		t.Errorf("labels = %v", cfg.Retrieval.Labels)
	}
	if !cfg.Watch.Enabled {
		t.Error("watch not enabled")
	}

	// Unset fields fall back to defaults.
	if cfg.Provider.EmbeddingModel != "text-embedding-ada-002" {
		t.Errorf("embedding model = %q", cfg.Provider.EmbeddingModel)
	}
	if cfg.Provider.MaxTokens != 10 || cfg.Provider.Temperature != 0 {
		t.Errorf("provider defaults = %+v", cfg.Provider)
	}
	if cfg.Retrieval.EmbedConcurrency != 8 {
		t.Errorf("embed_concurrency = %d", cfg.Retrieval.EmbedConcurrency)
	}

	// "./" paths resolve relative to the config file, absolute paths stay.
	if want := filepath.Join(dir, "data/corpus.db"); cfg.Storage.DatabasePath != want {
		t.Errorf("database_path = %q, want %q", cfg.Storage.DatabasePath, want)
	}
	if cfg.Storage.IndexPath != "/var/lib/kaitou/flat.bin" {
		t.Errorf("index_path = %q", cfg.Storage.IndexPath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("invalid yaml should error")
	}
}

func TestApplyDefaults_Empty(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Provider.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("api key env = %q", cfg.Provider.APIKeyEnv)
	}
	if cfg.Provider.CompletionModel != "gpt-4" || cfg.Provider.Dimensions != 1536 {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	if cfg.Retrieval.DefaultK != 3 {
		t.Errorf("default_k = %d", cfg.Retrieval.DefaultK)
	}
	if len(cfg.Retrieval.Labels) != 4 || cfg.Retrieval.Labels[3] != "4" {
		t.Errorf("labels = %v", cfg.Retrieval.Labels)
	}
	if cfg.OCR.AppIDEnv != "MATHPIX_APP_ID" || cfg.OCR.AppKeyEnv != "MATHPIX_APP_KEY" {
		t.Errorf("ocr = %+v", cfg.OCR)
	}
	if cfg.Watch.Enabled {
		t.Error("watch should default to disabled")
	}
}
