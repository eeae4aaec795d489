// README: Entry point; loads config, wires the pipeline, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jetzy/internal/ai"
	"jetzy/internal/config"
	httptransport "jetzy/internal/http"
	"jetzy/internal/infra"
	"jetzy/internal/links"
	"jetzy/internal/modules/conversation"
	"jetzy/internal/modules/travel"
	"jetzy/internal/modules/usercontext"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newContextStore(ctx, cfg)
	if err != nil {
		logger.Fatal("context store init", zap.Error(err))
	}

	gateway, factory, err := newGateway(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("model gateway init", zap.Error(err))
	}

	var transport travel.TransportProvider
	if cfg.Providers.GoogleMapsKey != "" {
		transport, err = travel.NewDirectionsProvider(cfg.Providers.GoogleMapsKey)
		if err != nil {
			logger.Fatal("directions provider init", zap.Error(err))
		}
		logger.Info("transport search backed by Google Directions")
	} else {
		transport = travel.NewMockTransportProvider()
		logger.Info("transport search backed by mock data")
	}

	dispatcher := travel.NewService(
		travel.NewMockFlightProvider(),
		travel.NewMockRestaurantProvider(),
		transport,
		logger,
	)

	conv := conversation.NewService(gateway, factory, dispatcher, store, links.NewProcessor(), logger)

	router := httptransport.NewRouter(conv, dispatcher, store, logger)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := conv.Close(); err != nil {
		logger.Warn("closing services", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing context store", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}

func newContextStore(ctx context.Context, cfg config.Config) (usercontext.Store, error) {
	switch cfg.ContextStore {
	case "redis":
		return usercontext.NewRedisStore(infra.NewRedis(cfg.Redis.Addr), 0), nil
	case "postgres":
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		return usercontext.NewPostgresStore(pool), nil
	default:
		return usercontext.NewMemoryStore(), nil
	}
}

func newGateway(ctx context.Context, cfg config.Config, logger *zap.Logger) (ai.CompletionClient, ai.ClientFactory, error) {
	if cfg.Model.Backend == "gemini" {
		// The JETZY_MODEL default targets OpenAI; let the Gemini client pick
		// its own default unless a gemini model was configured explicitly.
		model := cfg.Model.Model
		if !strings.HasPrefix(model, "gemini") {
			model = ""
		}
		gateway, err := ai.NewGeminiClient(ctx, cfg.Model.GeminiKey, model)
		if err != nil {
			return nil, nil, err
		}
		factory := func() (ai.CompletionClient, error) {
			return ai.NewGeminiClient(context.Background(), cfg.Model.GeminiKey, model)
		}
		return gateway, factory, nil
	}

	gateway := ai.NewClient(cfg.Model, logger)
	factory := func() (ai.CompletionClient, error) {
		return ai.NewClient(cfg.Model, logger), nil
	}
	return gateway, factory, nil
}
