package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Vatsim struct {
		Endpoint     string        `yaml:"endpoint"`
		ClientID     string        `yaml:"client_id"`
		ClientSecret string        `yaml:"client_secret"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"vatsim"`

	JWT struct {
		Issuer string `yaml:"issuer"`
		// PEM PKCS#8 Ed25519 o seed de 32 bytes en base64.
		Key string        `yaml:"key"`
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`

	Redis struct {
		// vacío => limiter en memoria
		Addr   string `yaml:"addr"`
		DB     int    `yaml:"db"`
		Prefix string `yaml:"prefix"`
	} `yaml:"redis"`

	Rate struct {
		Login struct {
			Limit  int           `yaml:"limit"`
			Window time.Duration `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	Roster struct {
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"roster"`
}

// Load lee el YAML (opcional: path vacío o inexistente se ignora),
// aplica defaults y después pisa con variables de entorno.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	c.applyDefaults()
	c.applyEnvOverrides()
	return &c, nil
}

// FromEnv equivale a Load("") (sin archivo).
func FromEnv() *Config {
	c, _ := Load("")
	return c
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "postgres"
	}
	if c.Storage.Postgres.MaxOpenConns == 0 {
		c.Storage.Postgres.MaxOpenConns = 10
	}
	if c.Storage.Postgres.MaxIdleConns == 0 {
		c.Storage.Postgres.MaxIdleConns = 5
	}
	if c.Storage.Postgres.ConnMaxLifetime == "" {
		c.Storage.Postgres.ConnMaxLifetime = "30m"
	}
	if c.Vatsim.Timeout == 0 {
		c.Vatsim.Timeout = 10 * time.Second
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "menahq"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 24 * time.Hour
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "menahq:rl:"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 20
	}
	if c.Rate.Login.Window == 0 {
		c.Rate.Login.Window = time.Minute
	}
	if c.Roster.CacheTTL == 0 {
		c.Roster.CacheTTL = 30 * time.Second
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvDur("SERVER_SHUTDOWN_TIMEOUT"); ok {
		c.Server.ShutdownTimeout = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("DATABASE_URL"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// VATSIM
	if v, ok := getEnvStr("MENAHQ_API_VATSIM_OAUTH_ENDPOINT"); ok {
		c.Vatsim.Endpoint = strings.TrimRight(v, "/")
	}
	if v, ok := getEnvStr("MENAHQ_API_VATSIM_OAUTH_CLIENT_ID"); ok {
		c.Vatsim.ClientID = v
	}
	if v, ok := getEnvStr("MENAHQ_API_VATSIM_OAUTH_CLIENT_SECRET"); ok {
		c.Vatsim.ClientSecret = v
	}
	if v, ok := getEnvDur("VATSIM_HTTP_TIMEOUT"); ok {
		c.Vatsim.Timeout = v
	}

	// JWT
	if v, ok := getEnvStr("MENAHQ_API_JWT_KEY"); ok {
		c.JWT.Key = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvDur("JWT_TTL"); ok {
		c.JWT.TTL = v
	}

	// REDIS / RATE
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Redis.Prefix = v
	}
	if v, ok := getEnvInt("RATE_LOGIN_LIMIT"); ok {
		c.Rate.Login.Limit = v
	}
	if v, ok := getEnvDur("RATE_LOGIN_WINDOW"); ok {
		c.Rate.Login.Window = v
	}

	// ROSTER
	if v, ok := getEnvDur("ROSTER_CACHE_TTL"); ok {
		c.Roster.CacheTTL = v
	}
}

// Validate falla si falta configuración requerida, listando todas las claves
// faltantes de una vez (por su nombre de variable de entorno).
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Vatsim.Endpoint) == "" {
		missing = append(missing, "MENAHQ_API_VATSIM_OAUTH_ENDPOINT")
	}
	if strings.TrimSpace(c.Vatsim.ClientID) == "" {
		missing = append(missing, "MENAHQ_API_VATSIM_OAUTH_CLIENT_ID")
	}
	if strings.TrimSpace(c.Vatsim.ClientSecret) == "" {
		missing = append(missing, "MENAHQ_API_VATSIM_OAUTH_CLIENT_SECRET")
	}
	if strings.TrimSpace(c.JWT.Key) == "" {
		missing = append(missing, "MENAHQ_API_JWT_KEY")
	}
	if c.UsesPostgres() && strings.TrimSpace(c.Storage.DSN) == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.Storage.Driver {
	case "postgres", "pg", "postgresql", "memory", "mem":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
		return fmt.Errorf("POSTGRES_CONN_MAX_LIFETIME: %w", err)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Rate.Login.Limit < 0 {
		return errors.New("RATE_LOGIN_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) UsesPostgres() bool {
	switch c.Storage.Driver {
	case "memory", "mem":
		return false
	default:
		return true
	}
}

func (c *Config) IsProd() bool { return c.App.Env == "prod" }
