package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/example/everest-shop/internal/activity"
	"github.com/example/everest-shop/internal/api"
	"github.com/example/everest-shop/internal/assistant"
	"github.com/example/everest-shop/internal/domain/catalog"
	"github.com/example/everest-shop/internal/domain/chat"
	"github.com/example/everest-shop/internal/infrastructure/kafka"
	"github.com/example/everest-shop/internal/infrastructure/store"
	"github.com/example/everest-shop/internal/session"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logrus.WithField("component", "api")

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := setupTracing(cfg.TraceExporter)
	if err != nil {
		log.WithError(err).Fatal("configure tracing")
	}

	log.WithFields(logrus.Fields{
		"store":    catalog.StoreName,
		"provider": cfg.Provider,
		"kafka":    cfg.KafkaBrokers,
	}).Info("starting storefront API")
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		log.Warn("API_KEY is empty; chat replies will use the fallback message")
	}

	// Activity: in-memory history, forwarded to Kafka when brokers are set
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		log.WithField("topic", cfg.KafkaTopic).Info("publishing activity to Kafka")
	}
	eventStore := store.NewEventStore(producer)
	recorder := activity.NewRecorder(eventStore, logrus.WithField("component", "activity"))

	engine := catalog.NewEngine(catalog.Seed())
	instruction, err := chat.NewInstruction(engine.Products())
	if err != nil {
		log.WithError(err).Fatal("build system instruction")
	}
	completer, err := assistant.New(assistant.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		log.WithError(err).Fatal("configure assistant")
	}

	tokens, err := session.NewTokens(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.WithError(err).Fatal("configure session tokens")
	}
	if cfg.SessionSecret == "" {
		log.Warn("SESSION_SECRET is empty; sessions will not survive a restart")
	}

	manager := session.NewManager(session.Config{
		Engine:      engine,
		Completer:   completer,
		Instruction: instruction,
		ChatTimeout: cfg.AssistantTimeout,
		IdleTTL:     cfg.SessionTTL,
		Recorder:    recorder,
		OnExpire:    eventStore.Forget,
		Logger:      logrus.WithField("component", "session"),
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		manager.Run(ctx, time.Minute)
	}()

	router := api.NewRouter(api.NewHandlers(engine, eventStore), api.RouterConfig{
		Manager:        manager,
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         log,
		WebDir:         cfg.WebDir,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server started")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("flush traces")
	}
}
