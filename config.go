package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"lg/smartbite-go-api/internal/store"
	"lg/smartbite-go-api/internal/vision"
)

// Storage backends selectable with STORE.
const (
	storePostgres = "postgres"
	storeSQLite   = "sqlite"
	storeMemory   = "memory"
)

// config is read from the environment, optionally seeded from .env.
type config struct {
	Addr          string
	DBURL         string
	Store         string
	SQLitePath    string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

func loadConfig() (config, error) {
	// A missing .env is fine in production; variables come from the process.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := config{
		Addr:          getenv("ADDR", "localhost:3000"),
		DBURL:         os.Getenv("DB_URL"),
		Store:         os.Getenv("STORE"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", vision.DefaultBaseURL),
		OpenAIModel:   getenv("OPENAI_MODEL", vision.DefaultModel),
	}

	if cfg.Store == "" {
		cfg.Store = storeSQLite
		if cfg.DBURL != "" {
			cfg.Store = storePostgres
		}
	}
	switch cfg.Store {
	case storePostgres:
		if cfg.DBURL == "" {
			return config{}, fmt.Errorf("STORE=postgres requires DB_URL")
		}
	case storeSQLite:
		if cfg.SQLitePath == "" {
			p, err := store.DefaultSQLitePath()
			if err != nil {
				return config{}, err
			}
			cfg.SQLitePath = p
		}
	case storeMemory:
	default:
		return config{}, fmt.Errorf("unknown STORE %q (expected postgres, sqlite or memory)", cfg.Store)
	}

	if cfg.OpenAIKey == "" {
		log.Printf("[config] OPENAI_API_KEY not set; photo estimates will fail")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
