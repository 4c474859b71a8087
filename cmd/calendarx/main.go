package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/goliatone/calendarx"
	"github.com/goliatone/go-print"
	"github.com/joho/godotenv"
)

// envConfig satisfies calendarx.Config from process environment
type envConfig struct {
	signingKey    string
	signingMethod string
	tokenTTL      time.Duration
	issuer        string
}

func (c envConfig) GetSigningKey() string      { return c.signingKey }
func (c envConfig) GetSigningMethod() string   { return c.signingMethod }
func (c envConfig) GetContextKey() string      { return "current_user" }
func (c envConfig) GetTokenTTL() time.Duration { return c.tokenTTL }
func (c envConfig) GetIssuer() string          { return c.issuer }
func (c envConfig) GetAuthScheme() string      { return "Bearer" }

func configFromEnv() (envConfig, error) {
	cfg := envConfig{
		signingKey:    os.Getenv("JWT_SECRET"),
		signingMethod: envOr("JWT_ALGORITHM", "HS256"),
		tokenTTL:      calendarx.DefaultTokenTTL,
		issuer:        os.Getenv("JWT_ISSUER"),
	}

	if cfg.signingKey == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	if raw := os.Getenv("TOKEN_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return cfg, fmt.Errorf("TOKEN_TTL_MINUTES must be a positive integer, got %q", raw)
		}
		cfg.tokenTTL = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// best effort, real env wins over .env
	_ = godotenv.Load()

	cfg, err := configFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dsn := envOr("DATABASE_DSN", "file:calendarx.db?_pragma=foreign_keys(1)")
	addr := envOr("HTTP_ADDR", ":8000")

	db, err := calendarx.OpenDB(dsn)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := calendarx.CreateSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	srv := calendarx.NewServer(db, cfg, calendarx.ServerOptions{
		CORSOrigins: os.Getenv("CORS_ORIGINS"),
	})

	fmt.Println(print.MaybePrettyJSON(map[string]any{
		"addr":      addr,
		"dsn":       dsn,
		"algorithm": cfg.signingMethod,
		"token_ttl": cfg.tokenTTL.String(),
		"issuer":    cfg.issuer,
	}))

	go func() {
		if err := srv.Listen(addr); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()

	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
