// Package main is the kaitou CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/kaitou/internal/answer"
	"github.com/hyperjump/kaitou/internal/config"
	"github.com/hyperjump/kaitou/internal/corpus"
	"github.com/hyperjump/kaitou/internal/engine"
	"github.com/hyperjump/kaitou/internal/extract"
	"github.com/hyperjump/kaitou/internal/ocr"
	"github.com/hyperjump/kaitou/internal/prompt"
	"github.com/hyperjump/kaitou/internal/provider"
	"github.com/hyperjump/kaitou/internal/server"
	"github.com/hyperjump/kaitou/internal/storage"
	"github.com/hyperjump/kaitou/internal/vector"
	"github.com/hyperjump/kaitou/internal/watcher"
	"github.com/hyperjump/kaitou/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kaitou/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// .env is optional; in development it carries the provider API keys.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "ask":
		runAsk()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("kaitou version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildEngine creates the engine with OpenAI providers from cfg.
func buildEngine(cfg *config.Config, logger *zap.Logger) (*engine.Engine, error) {
	apiKey := os.Getenv(cfg.Provider.APIKeyEnv)
	openAI, err := provider.NewOpenAI(apiKey, provider.OpenAIConfig{
		EmbeddingModel:  cfg.Provider.EmbeddingModel,
		CompletionModel: cfg.Provider.CompletionModel,
		Dimensions:      cfg.Provider.Dimensions,
		MaxTokens:       cfg.Provider.MaxTokens,
		Temperature:     cfg.Provider.Temperature,
		Timeout:         time.Duration(cfg.Provider.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("provider setup failed (is %s set?): %w", cfg.Provider.APIKeyEnv, err)
	}
	eng := engine.New(
		openAI,
		openAI,
		prompt.NewBuilder(cfg.Retrieval.Labels),
		answer.NewExtractor(cfg.Retrieval.Labels),
		engine.WithLogger(logger),
		engine.WithEmbedConcurrency(cfg.Retrieval.EmbedConcurrency),
	)
	return eng, nil
}

// buildOCR creates the Mathpix client when credentials are configured,
// nil otherwise.
func buildOCR(cfg *config.Config) *ocr.Client {
	appID := os.Getenv(cfg.OCR.AppIDEnv)
	appKey := os.Getenv(cfg.OCR.AppKeyEnv)
	if appID == "" || appKey == "" {
		return nil
	}
	client, err := ocr.NewClient(appID, appKey, time.Duration(cfg.OCR.TimeoutSecs)*time.Second)
	if err != nil {
		return nil
	}
	return client
}

// persistSnapshot saves the corpus records and the vector index so a
// restart can restore the snapshot without re-embedding.
func persistSnapshot(ctx context.Context, cfg *config.Config, store storage.Storage, snap *corpus.Snapshot) error {
	if err := store.ReplaceAll(ctx, snap.Store.Records()); err != nil {
		return fmt.Errorf("persist corpus: %w", err)
	}
	if err := snap.Index.Save(cfg.Storage.IndexPath); err != nil {
		return fmt.Errorf("persist index: %w", err)
	}
	return nil
}

// rebuildCorpus extracts every solution paper in the data directory,
// re-ingests the whole corpus, and persists the new snapshot.
func rebuildCorpus(ctx context.Context, cfg *config.Config, eng *engine.Engine, store storage.Storage, logger *zap.Logger) (int, error) {
	records, err := extract.Dir(cfg.Storage.DataDir)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", cfg.Storage.DataDir, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("no QA pairs found in %s", cfg.Storage.DataDir)
	}
	snap, err := eng.Ingest(ctx, records)
	if err != nil {
		return 0, err
	}
	if err := persistSnapshot(ctx, cfg, store, snap); err != nil {
		logger.Warn("snapshot persist failed", zap.Error(err))
	}
	return snap.Store.Len(), nil
}

// restoreSnapshot rebuilds the engine snapshot from the persisted corpus
// and index file. Returns false when nothing restorable exists or the
// persisted state is out of alignment (a full rebuild is needed then).
func restoreSnapshot(ctx context.Context, cfg *config.Config, eng *engine.Engine, store storage.Storage, logger *zap.Logger) bool {
	records, err := store.LoadAll(ctx)
	if err != nil || len(records) == 0 {
		return false
	}
	index, err := vector.NewFlat(cfg.Provider.Dimensions)
	if err != nil {
		return false
	}
	if err := index.Load(cfg.Storage.IndexPath); err != nil {
		logger.Warn("index load failed", zap.String("path", cfg.Storage.IndexPath), zap.Error(err))
		return false
	}
	if index.Size() != len(records) {
		logger.Warn("persisted corpus and index disagree; re-ingest required",
			zap.Int("records", len(records)), zap.Int("vectors", index.Size()))
		return false
	}
	snap, err := corpus.NewSnapshot(corpus.NewStore(records), index)
	if err != nil {
		return false
	}
	return eng.Restore(snap) == nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize engine", zap.Error(err))
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if restoreSnapshot(ctx, cfg, eng, store, logger) {
		logger.Info("corpus restored from disk", zap.Int("records", eng.Size()))
	} else if count, err := rebuildCorpus(ctx, cfg, eng, store, logger); err != nil {
		// Queries fail with NoData until a corpus is loaded; the server
		// still starts so ingest/reload can fix that.
		logger.Warn("initial corpus build failed", zap.Error(err))
	} else {
		logger.Info("corpus built", zap.Int("records", count))
	}

	reload := func(ctx context.Context) (int, error) {
		return rebuildCorpus(ctx, cfg, eng, store, logger)
	}
	persist := func(ctx context.Context, snap *corpus.Snapshot) error {
		return persistSnapshot(ctx, cfg, store, snap)
	}

	watchCtx, watchCancel := context.WithCancel(ctx)
	defer watchCancel()
	if cfg.Watch.Enabled {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(cfg.Storage.DataDir, []string{".pdf"}, func() {
			if _, err := reload(context.Background()); err != nil {
				logger.Warn("watch rebuild failed", zap.Error(err))
			}
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Warn("Failed to start watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(eng, buildOCR(cfg), reload, persist, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dataDir := fs.String("data", "", "solution-paper directory (overrides config)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	count, err := rebuildCorpus(context.Background(), cfg, eng, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ingested %d QA pairs from %s\n", count, cfg.Storage.DataDir)
}

func printUsage() {
	fmt.Print(`kaitou - retrieval-augmented exam question answering

Usage:
  kaitou server  [-config path] [-debug]     start the HTTP API server
  kaitou ingest  [-config path] [-data dir]  extract solution papers and build the corpus
  kaitou ask     [flags] <question>          ask a question against a running server
  kaitou status  [-server url]               show server status
  kaitou version                             print version
  kaitou help                                show this help
`)
}
