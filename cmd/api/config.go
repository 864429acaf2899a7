package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type config struct {
	Port             string
	APIKey           string
	Provider         string
	Model            string
	BaseURL          string
	AssistantTimeout time.Duration
	SessionSecret    string
	SessionTTL       time.Duration
	CORSOrigins      []string
	KafkaBrokers     []string
	KafkaTopic       string
	WebDir           string
	TraceExporter    string
	LogLevel         logrus.Level
}

func loadConfig() (config, error) {
	cfg := config{
		Port:          getEnv("PORT", "8080"),
		APIKey:        os.Getenv("API_KEY"),
		Provider:      getEnv("ASSISTANT_PROVIDER", "gemini"),
		Model:         os.Getenv("ASSISTANT_MODEL"),
		BaseURL:       os.Getenv("ASSISTANT_BASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CORSOrigins:   splitList(os.Getenv("CORS_ORIGINS")),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "storefront-activity"),
		WebDir:        os.Getenv("WEB_DIR"),
		TraceExporter: os.Getenv("OTEL_TRACES_EXPORTER"),
	}

	var err error
	if cfg.AssistantTimeout, err = time.ParseDuration(getEnv("ASSISTANT_TIMEOUT", "30s")); err != nil {
		return cfg, fmt.Errorf("ASSISTANT_TIMEOUT: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "2h")); err != nil {
		return cfg, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.LogLevel, err = logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
