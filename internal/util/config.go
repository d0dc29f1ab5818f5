package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int       `json:"port"`
	Db   DbSecrets `json:"db"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

// Enabled reports whether enough is configured to open a connection.
// Without a database the service still prices, it just can't persist.
func (t DbSecrets) Enabled() bool {
	return t.Host != "" && t.Database != ""
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

const defaultPort = 3009

func secretsFilePath() string {
	if path := os.Getenv("PRICING_SECRETS_FILE"); path != "" {
		return path
	}
	switch strings.ToLower(os.Getenv("PRICING_ENV")) {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "/go/src/app/secrets.json"
}

// LoadConfig reads an optional .env file, then an optional JSON secrets
// file, then applies PRICING_* environment overrides on top.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Config{
		Port: defaultPort,
		Db: DbSecrets{
			Port: "5432",
		},
	}

	f, err := os.ReadFile(secretsFilePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not open secrets file: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(f, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse secrets file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PRICING_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PRICING_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	overrides := map[string]*string{
		"PRICING_DB_HOST":     &cfg.Db.Host,
		"PRICING_DB_PORT":     &cfg.Db.Port,
		"PRICING_DB_USER":     &cfg.Db.User,
		"PRICING_DB_PASSWORD": &cfg.Db.Password,
		"PRICING_DB_NAME":     &cfg.Db.Database,
	}
	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("PRICING_DB_SSL"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PRICING_DB_SSL %q: %w", v, err)
		}
		cfg.Db.EnableSsl = enabled
	}

	return nil
}
