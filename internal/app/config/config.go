package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL    string
	HTTPAddr       string
	NATSURL        string
	EventWorkers   int
	HandlerTimeout time.Duration
	WebhookURL     string
}

func Load() (Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	workers := 4
	if raw := os.Getenv("EVENT_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("EVENT_WORKERS must be a positive integer")
		}
		workers = n
	}

	handlerTimeout := 10 * time.Second
	if raw := os.Getenv("HANDLER_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("HANDLER_TIMEOUT must be a positive duration")
		}
		handlerTimeout = d
	}

	return Config{
		DatabaseURL:    dbURL,
		HTTPAddr:       addr,
		NATSURL:        os.Getenv("NATS_URL"),
		EventWorkers:   workers,
		HandlerTimeout: handlerTimeout,
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
	}, nil
}
