package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/kaitou/data/db/corpus.db"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "/usr/local/var/kaitou/data/indices/flat.bin"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "/usr/local/var/kaitou/data/papers"
	}
	if cfg.Provider.APIKeyEnv == "" {
		cfg.Provider.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Provider.EmbeddingModel == "" {
		cfg.Provider.EmbeddingModel = "text-embedding-ada-002"
	}
	if cfg.Provider.CompletionModel == "" {
		cfg.Provider.CompletionModel = "gpt-4"
	}
	if cfg.Provider.Dimensions == 0 {
		cfg.Provider.Dimensions = 1536
	}
	if cfg.Provider.MaxTokens == 0 {
		cfg.Provider.MaxTokens = 10
	}
	// Temperature stays 0 when unset: constrained answers should be deterministic.
	if cfg.Provider.TimeoutSecs == 0 {
		cfg.Provider.TimeoutSecs = 30
	}
	if cfg.Retrieval.DefaultK == 0 {
		cfg.Retrieval.DefaultK = 3
	}
	if cfg.Retrieval.EmbedConcurrency == 0 {
		cfg.Retrieval.EmbedConcurrency = 8
	}
	if cfg.Retrieval.Labels == nil {
		cfg.Retrieval.Labels = []string{"1", "2", "3", "4"}
	}
	if cfg.OCR.AppIDEnv == "" {
		cfg.OCR.AppIDEnv = "MATHPIX_APP_ID"
	}
	if cfg.OCR.AppKeyEnv == "" {
		cfg.OCR.AppKeyEnv = "MATHPIX_APP_KEY"
	}
	if cfg.OCR.TimeoutSecs == 0 {
		cfg.OCR.TimeoutSecs = 30
	}
}
