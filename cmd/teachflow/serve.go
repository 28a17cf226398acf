package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/teachflow/internal/api"
	"github.com/terraincognita07/teachflow/internal/db"
	"github.com/terraincognita07/teachflow/internal/logger"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type ServeCmd struct {
	Port         string `help:"HTTP listen port." default:"8080" env:"PORT"`
	DBPath       string `help:"SQLite database path." default:"data/teachflow.db" env:"DB_PATH" type:"path"`
	SecretKey    string `help:"Secret used to sign session tokens (at least 32 characters)." env:"SECRET_KEY"`
	CookieSecure bool   `help:"Mark session and CSRF cookies Secure." env:"COOKIE_SECURE"`
	CSRF         bool   `help:"Require the X-CSRF-Token header on unsafe requests." default:"true" negatable:"" env:"CSRF_ENABLED"`
}

func (cmd *ServeCmd) Validate() error {
	secret, err := resolveSecretKey(cmd.SecretKey)
	if err != nil {
		return err
	}
	port, err := resolvePort(cmd.Port)
	if err != nil {
		return err
	}
	cmd.SecretKey = secret
	cmd.Port = port
	return nil
}

func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return port, nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "teachflow_csrf",
		CookieSameSite: "Lax",
		// Clients read the token from the cookie and echo it in the header.
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		Expiration:     12 * time.Hour,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid csrf token"})
		},
	}
}

func (cmd *ServeCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Dev)

	database, err := db.OpenSQLite(filepath.Clean(cmd.DBPath), log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cmd.SecretKey, cmd.CookieSecure, log)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "TeachFlow " + globals.Version,
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(api.RequestLogger(log))
	app.Use(compress.New())
	if cmd.CSRF {
		app.Use(csrf.New(csrfMiddlewareConfig(cmd.CookieSecure)))
	}
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("port", cmd.Port).
		Str("db", cmd.DBPath).
		Str("version", globals.Version).
		Msg("teachflow listening")
	if err := app.Listen(":" + cmd.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
