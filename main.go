package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"skillbridge/internal/app"
	"skillbridge/internal/backend"
	"skillbridge/internal/config"
)

//go:embed static
var staticFS embed.FS

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.NewConfigFromEnvironment(staticFS)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	cfg.Backend, err = newBackend(context.Background(), &cfg)
	if err != nil {
		log.Fatalf("failed to set up %s backend: %v", cfg.AuthBackend, err)
	}

	a := app.New(&cfg)

	log.Fatal(a.Listen(cfg.Addr()))
}

func newBackend(ctx context.Context, cfg *config.Config) (backend.Client, error) {
	if cfg.AuthBackend == config.BackendCognito {
		return backend.NewCognitoFromEnvironment(ctx, cfg.CognitoClientId)
	}
	return backend.NewAPI(cfg.APIBaseURL), nil
}
