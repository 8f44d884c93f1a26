package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sentimentform/internal/analysis"
	"sentimentform/internal/api"
	"sentimentform/internal/classifier"
	"sentimentform/internal/config"
	"sentimentform/internal/logging"
	"sentimentform/internal/queue"
	"sentimentform/internal/redis"
	"sentimentform/internal/storage"
	"sentimentform/internal/validity"
	"sentimentform/internal/vocabulary"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	logging.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		logging.WithError(err).Error("server exited")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	vocab, err := vocabulary.LoadFile(cfg.Vocabulary.Path)
	if err != nil {
		return err
	}
	logging.Logger.Info("vocabulary loaded", "path", cfg.Vocabulary.Path, "words", vocab.Len())

	filter := validity.New(vocab,
		validity.WithMinTokens(cfg.Validity.MinTokens),
		validity.WithMinRatio(cfg.Validity.MinRatio),
	)

	var cl classifier.Classifier = classifier.NewTimed(newClassifier(cfg.Classifier))

	if cfg.Cache.Addr != "" {
		cache, err := redis.New(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
		if err != nil {
			return err
		}
		defer cache.Close()
		cl = classifier.NewCached(cl, cache)
		logging.Logger.Info("classifier cache enabled", "addr", cfg.Cache.Addr)
	}

	opts := []analysis.Option{analysis.WithDelay(cfg.Analysis.Delay)}

	history, err := newHistory(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
		opts = append(opts, analysis.WithHistory(history))
	}

	if len(cfg.Queue.Brokers) > 0 {
		pub, err := queue.NewKafka(cfg.Queue.Brokers, cfg.Queue.Topic)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts = append(opts, analysis.WithPublisher(pub))
		logging.Logger.Info("publishing analyses", "brokers", cfg.Queue.Brokers, "topic", cfg.Queue.Topic)
	}

	analyzer := analysis.New(filter, cl, opts...)
	server := api.NewServer(analyzer, api.Options{MaxBody: cfg.Server.MaxBody})

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("server starting", "addr", cfg.Server.Port, "model", cl.Model())
		if err := server.Start(cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logging.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newClassifier(cfg config.ClassifierConfig) classifier.Classifier {
	switch cfg.Provider {
	case "openrouter":
		return classifier.NewOpenRouter(cfg.URL, cfg.APIKey, cfg.Model, cfg.Timeout)
	default:
		return classifier.NewHuggingFace(cfg.URL, cfg.APIKey, cfg.Model, cfg.Timeout)
	}
}

// newHistory returns nil when history is disabled.
func newHistory(ctx context.Context, cfg config.StorageConfig) (storage.AnalysisRepository, error) {
	if cfg.DSN != "" {
		return storage.NewPostgres(ctx, cfg.DSN)
	}
	if cfg.MemoryCapacity > 0 {
		return storage.NewMemory(cfg.MemoryCapacity), nil
	}
	return nil, nil
}
