package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Web configures the billed-web binary.
type Web struct {
	HTTP struct {
		Port string `yaml:"port" env:"WEB_HTTP_PORT"`
	} `yaml:"http"`
	API struct {
		BaseURL string `yaml:"baseUrl" env:"WEB_API_BASE_URL"`
	} `yaml:"api"`
	Redis struct {
		Addr     string `yaml:"addr" env:"WEB_REDIS_ADDR"`
		Password string `yaml:"password" env:"WEB_REDIS_PASSWORD"`
		TTL      int    `yaml:"ttlSeconds" env:"WEB_REDIS_TTL"`
	} `yaml:"redis"`
}

// API configures the billed-api binary.
type API struct {
	HTTP struct {
		Port string `yaml:"port" env:"API_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"API_POSTGRES_DSN"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret  string `yaml:"jwtSecret" env:"API_JWT_SECRET"`
		TokenTTL   int    `yaml:"tokenTtlSeconds" env:"API_TOKEN_TTL"`
		BcryptCost int    `yaml:"bcryptCost" env:"API_BCRYPT_COST"`
	} `yaml:"auth"`
	Files struct {
		Dir     string `yaml:"dir" env:"API_FILES_DIR"`
		BaseURL string `yaml:"baseUrl" env:"API_FILES_BASE_URL"`
	} `yaml:"files"`
}

// LoadWeb reads billed-web configuration.
func LoadWeb() (*Web, error) {
	cfg := &Web{}
	cfg.HTTP.Port = "8080"
	cfg.API.BaseURL = "http://localhost:5678"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.TTL = 86400

	if err := load(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, errors.New("config: api base url required")
	}
	return cfg, nil
}

// LoadAPI reads billed-api configuration.
func LoadAPI() (*API, error) {
	cfg := &API{}
	cfg.HTTP.Port = "5678"
	cfg.Auth.TokenTTL = 3600
	cfg.Files.Dir = "data/receipts"
	cfg.Files.BaseURL = "http://localhost:5678"

	if err := load(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns the :port listen address for billed-web.
func (c *Web) HTTPAddress() string { return listenAddr(c.HTTP.Port, "8080") }

// SessionTTL returns the redis session lifetime.
func (c *Web) SessionTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// HTTPAddress returns the :port listen address for billed-api.
func (c *API) HTTPAddress() string { return listenAddr(c.HTTP.Port, "5678") }

// TokenTTL returns the JWT lifetime.
func (c *API) TokenTTL() time.Duration {
	if c.Auth.TokenTTL <= 0 {
		return time.Hour
	}
	return time.Duration(c.Auth.TokenTTL) * time.Second
}

func listenAddr(port, fallback string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = fallback
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
