// ABOUTME: Entry point for the portfolio content server
// ABOUTME: Serves the REST API backing the portfolio site and its admin panel

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/shuvo-dev/portfolio-server/internal/auth"
	"github.com/shuvo-dev/portfolio-server/internal/config"
	"github.com/shuvo-dev/portfolio-server/internal/portfolio"
	"github.com/shuvo-dev/portfolio-server/internal/server"
	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

// getConfigPath returns the path to the server config file.
// Priority: PORTFOLIO_CONFIG env var > ./portfolio.yaml
func getConfigPath() string {
	if envPath := os.Getenv("PORTFOLIO_CONFIG"); envPath != "" {
		return envPath
	}
	return "portfolio.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: portfolio-server <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve          Start the content server")
		fmt.Println("  init           Create a new config file interactively")
		fmt.Println("  hash-password  Bcrypt-hash an admin password for the config file")
		fmt.Println("  health         Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "hash-password":
		err = runHashPassword()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}

	setupLogging(cfg.Logging)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := portfolio.EnsureSeeded(ctx, st, cfg.Content.SeedPath); err != nil {
		return fmt.Errorf("seeding config: %w", err)
	}

	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	gate := auth.NewGate(cfg.Auth.AdminUsername, []byte(cfg.Auth.AdminPasswordHash), verifier, cfg.Auth.TokenTTL)

	srv := server.New(st, gate, verifier, cfg)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		color.Green("portfolio-server %s listening on %s (%s)", version, cfg.Server.HTTPAddr, cfg.Server.Environment)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func runInit() error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Admin username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Admin password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password = strings.TrimSpace(password)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	secret, err := randomSecret()
	if err != nil {
		return fmt.Errorf("generating jwt secret: %w", err)
	}

	content := fmt.Sprintf(`server:
  http_addr: ":3001"
  environment: "development"

database:
  path: "./data/portfolio.db"

auth:
  jwt_secret: "%s"
  token_ttl: "24h"
  admin_username: "%s"
  admin_password_hash: "%s"

cors:
  allowed_origins:
    - "http://localhost:5173"

rate_limit:
  window: "15m"
  max_requests: 100

logging:
  level: "info"
  format: "text"
`, secret, username, hash)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	color.Green("Wrote %s", configPath)
	return nil
}

func runHashPassword() error {
	var password string
	if len(os.Args) > 2 {
		password = os.Args[2]
	} else {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	fmt.Println(hash)
	return nil
}

func runHealth(ctx context.Context) error {
	addr := os.Getenv("PORTFOLIO_ADDR")
	if addr == "" {
		addr = "http://localhost:3001"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}

	if !body.Success {
		return fmt.Errorf("server unhealthy: %s", body.Message)
	}

	color.Green("OK: %s", body.Message)
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
