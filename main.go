package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cli/browser"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/daytrack/models"
	"github.com/daytrack/seed"
	"github.com/daytrack/server"
	"github.com/daytrack/storage"
)

func main() {
	// A .env file is optional; plain environment variables win either way.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02_15:04:05"})
	if os.Getenv("DAYTRACK_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()

	addr := envOr("DAYTRACK_ADDR", "localhost:8080")
	dataDir := envOr("DAYTRACK_DATA_DIR", "daytrack_data")

	store, err := openStore(ctx, dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	session := server.NewSession(store)
	if err := session.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load user data")
	}

	if seedDir := os.Getenv("DAYTRACK_SEED_DIR"); seedDir != "" {
		if err := seedIfEmpty(ctx, session, seedDir); err != nil {
			log.Fatal().Err(err).Msg("failed to seed questions")
		}
	}

	if os.Getenv("DAYTRACK_OPEN_BROWSER") != "false" {
		go func() {
			if err := browser.OpenURL("http://" + addr); err != nil {
				log.Warn().Err(err).Msg("could not open browser")
			}
		}()
	}

	srv := server.New(addr, session, store)
	if err := srv.Serve(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func openStore(ctx context.Context, dataDir string) (storage.Store, error) {
	switch envOr("DAYTRACK_STORE", "file") {
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, err
		}
		return storage.NewSQLiteStore(ctx, filepath.Join(dataDir, "daytrack.sqlite"))
	default:
		return storage.NewFileStore(dataDir)
	}
}

// seedIfEmpty bootstraps the default question set, but only into a
// document that has no trackables yet.
func seedIfEmpty(ctx context.Context, session *server.Session, seedDir string) error {
	sets, err := seed.Load(seedDir)
	if err != nil {
		return err
	}
	return session.Apply(ctx, func(u *models.UserData) error {
		if len(u.Trackables) > 0 {
			return nil
		}
		return seed.Apply(u, sets)
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
