// Package app wires configuration, logging, services and transports into the
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/myenglish-study/internal/adapter/memory"
	"github.com/heartmarshall/myenglish-study/internal/completion"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/service/assist"
	"github.com/heartmarshall/myenglish-study/internal/service/study"
	"github.com/heartmarshall/myenglish-study/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-study/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, builds the study service and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.Bool("llm_configured", cfg.LLM.ResolveAPIKey() != ""),
	)

	svc := NewStudyService(logger, cfg)

	rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer rl.Stop()

	handler := rest.NewRouter(rest.RouterConfig{
		Study:           rest.NewStudyHandler(svc, logger, cfg.Study.MaxUploadBytes),
		Health:          rest.NewHealthHandler(svc, BuildVersion()),
		Limiter:         rl,
		UploadPerMinute: cfg.RateLimit.UploadPerMinute,
		Global: []middleware.Middleware{
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.Logger(logger),
			middleware.CORS(cfg.CORS),
		},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runJanitor(gctx, logger, svc, cfg.Study.JanitorInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("application stopped")
	return nil
}

// NewStudyService builds the study service with an in-memory session store.
func NewStudyService(logger *slog.Logger, cfg *config.Config) *study.Service {
	return study.NewService(
		logger,
		memory.NewSessionRepo(),
		assist.NewAnnotator(logger, cfg.LLM),
		CompleterFactory(logger, cfg.LLM),
		cfg.LLM,
		cfg.Study,
	)
}

// CompleterFactory returns a factory building completion clients for the
// configured provider with a given key.
func CompleterFactory(logger *slog.Logger, cfg config.LLMConfig) study.CompleterFactory {
	return func(apiKey string) (completion.Completer, error) {
		return completion.New(cfg, apiKey, logger)
	}
}

type sessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// runJanitor evicts idle sessions every interval until ctx is done.
func runJanitor(ctx context.Context, logger *slog.Logger, c sessionCleaner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.CleanupExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("session cleanup failed", slog.String("error", err.Error()))
			}
		}
	}
}
