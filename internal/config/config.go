package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath        string
	ServerPort    string
	SecretKey     string // signs access tokens
	SessionSecret string // flash-message cookie store
	TokenTTL      time.Duration
	Debug         bool

	AdminLogin    string
	AdminPassword string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:        os.Getenv("DB_PATH"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SecretKey:     os.Getenv("SECRET_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminLogin:    os.Getenv("ADMIN_LOGIN"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "data/kost.db"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.AdminLogin == "" {
		cfg.AdminLogin = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin"
	}

	ttlMinutes := 30
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlMinutes = n
		}
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.Debug, _ = strconv.ParseBool(os.Getenv("DEBUG"))

	return cfg
}
