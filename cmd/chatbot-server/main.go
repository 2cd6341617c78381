// cmd/chatbot-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"farmtech-assist/internal/chat/action"
	"farmtech-assist/internal/chat/catalog"
	"farmtech-assist/internal/chat/classifier"
	"farmtech-assist/internal/chat/engine"
	"farmtech-assist/internal/chat/intent"
	"farmtech-assist/internal/chat/lang"
	"farmtech-assist/internal/chat/rules"
	"farmtech-assist/internal/chat/userdata"
	"farmtech-assist/internal/common/config"
	"farmtech-assist/internal/common/database"
	"farmtech-assist/internal/common/logger"
	"farmtech-assist/internal/common/observability"
	"farmtech-assist/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapLog := logger.New("info", "console")
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chatbot server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load Rule Tables ---
	table, err := rules.Load()
	if err != nil {
		zapLog.Fatal("rule tables failed to load", zap.Error(err))
	}
	zapLog.Info("Rule tables loaded",
		zap.Int("genericIntents", len(table.Generic)),
		zap.Int("personalizedIntents", len(table.Personalized)),
		zap.Int("dictionaryTerms", len(table.Dictionary)),
	)

	// --- Init Redis user cache (optional) with retry ---
	var userOpts []userdata.Option
	if cfg.Cache.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var rerr error
			redis, rerr = database.NewRedis(cfg.Cache.Redis)
			if rerr != nil {
				return rerr
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, user cache disabled", zap.Error(err))
		} else {
			defer redis.Close()
			userOpts = append(userOpts, userdata.WithCache(redis, config.GetDuration(cfg.Cache.TTL)))
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Init Backend Clients ---
	backendHTTP := &http.Client{Timeout: config.GetDuration(cfg.Backend.Timeout)}
	users := userdata.NewClient(cfg.Backend.BaseURL, backendHTTP, log, userOpts...)
	executor := action.NewExecutor(cfg.Backend.BaseURL, backendHTTP, log, action.WithRecorder(obs))

	var clf classifier.Classifier
	if cfg.Classifier.Enabled {
		clf = classifier.NewHTTPClassifier(cfg.Classifier.BaseURL, config.GetDuration(cfg.Classifier.Timeout))
		zapLog.Info("Intent classifier enabled", zap.String("baseUrl", cfg.Classifier.BaseURL))
	}

	// --- Assemble Engine & Server ---
	eng := engine.New(
		intent.NewMatcher(table),
		catalog.New(table, rand.New(rand.NewSource(time.Now().UnixNano()))),
		executor,
		clf,
		log,
	)
	srv := server.New(eng, users, lang.NewTranslator(table.Dictionary), obs, log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: srv.Router(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Chatbot server stopped gracefully")
}
