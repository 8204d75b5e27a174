package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAppEnv                   = "dev"
	defaultHTTPAddr                 = ":8080"
	defaultDatabaseURL              = "foodgram.db"
	defaultJWTSecret                = "change-me-jwt-secret"
	defaultJWTTTL                   = "24h"
	defaultRecipesPageSize          = 6
	defaultSubscriptionRecipesLimit = 3
)

// Config is the runtime configuration shared by cmd/api, cmd/seed and
// cmd/foodgramctl. Values come from the environment (and .env, if the
// binary loaded one).
type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// RecipesPageSize — размер страницы списка рецептов по умолчанию.
	RecipesPageSize int
	// SubscriptionRecipesLimit — сколько рецептов автора показывать в
	// карточке подписки, если клиент не передал recipes_limit.
	SubscriptionRecipesLimit int

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("HTTP_ADDR", defaultHTTPAddr)
	v.SetDefault("DATABASE_URL", defaultDatabaseURL)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", defaultJWTTTL)
	v.SetDefault("RECIPES_PAGE_SIZE", defaultRecipesPageSize)
	v.SetDefault("SUBSCRIPTION_RECIPES_LIMIT", defaultSubscriptionRecipesLimit)

	appEnv := strings.TrimSpace(v.GetString("APP_ENV"))
	if env := strings.TrimSpace(v.GetString("ENV")); appEnv == defaultAppEnv && env != "" {
		appEnv = env
	}

	cfg := &Config{
		AppEnv:                   strings.ToLower(appEnv),
		HTTPAddr:                 strings.TrimSpace(v.GetString("HTTP_ADDR")),
		DatabaseURL:              strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:                strings.TrimSpace(v.GetString("JWT_SECRET")),
		RecipesPageSize:          v.GetInt("RECIPES_PAGE_SIZE"),
		SubscriptionRecipesLimit: v.GetInt("SUBSCRIPTION_RECIPES_LIMIT"),
		CORSAllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	ttl := strings.TrimSpace(v.GetString("JWT_TTL"))
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", ttl, err)
	}
	cfg.JWTTTL = d

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s page_size=%d recipes_limit=%d",
		cfg.AppEnv, cfg.HTTPAddr, cfg.RecipesPageSize, cfg.SubscriptionRecipesLimit)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.RecipesPageSize < 1 {
		return fmt.Errorf("RECIPES_PAGE_SIZE must be >= 1")
	}
	if cfg.SubscriptionRecipesLimit < 0 {
		return fmt.Errorf("SUBSCRIPTION_RECIPES_LIMIT must be >= 0")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
