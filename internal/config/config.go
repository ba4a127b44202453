package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env            string // application environment (dev, prod)
	Port           string // HTTP port to listen on
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token TTL in minutes
	RefreshTTLDays int    // refresh token TTL in days
	BcryptCost     int    // bcrypt cost for password hashing

	DB   DBConfig
	Seat SeatConfig
	Live LiveStatusConfig

	RabbitURL string // broker URL; empty uses the local default
	LogDir    string // directory for the booking log written by the consumer
}

// DBConfig selects and addresses the relational store.
type DBConfig struct {
	Driver  string // "mysql" or "sqlite"
	User    string
	Pass    string
	Host    string
	Port    string
	Name    string
	Path    string // sqlite file
	Migrate bool   // apply embedded migrations at boot
}

// SeatConfig chooses how /v1/update-seats serializes concurrent decrements.
type SeatConfig struct {
	Strategy   string // "atomic" or "cas"
	MaxRetries int
}

// LiveStatusConfig addresses the running-status provider.
type LiveStatusConfig struct {
	APIKey  string
	Host    string
	BaseURL string
	Timeout time.Duration
}

// Load reads configuration from the environment. Missing required values
// end the process through must().
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		DB:             LoadDBConfig(),
		Seat: SeatConfig{
			Strategy:   strings.ToLower(envStr("SEAT_DECREMENT_STRATEGY", "atomic")),
			MaxRetries: envInt("SEAT_DECREMENT_MAX_RETRIES", 5),
		},
		Live: LiveStatusConfig{
			APIKey:  os.Getenv("RAPIDAPI_KEY"),
			Host:    envStr("RAPIDAPI_HOST", "indian-railway-irctc.p.rapidapi.com"),
			BaseURL: os.Getenv("LIVE_STATUS_URL"),
			Timeout: envDur("LIVE_STATUS_TIMEOUT", 10*time.Second),
		},
		RabbitURL: rabbitURL(),
		LogDir:    envStr("BOOKING_LOG_DIR", "logs"),
	}
}

// LoadDBConfig reads DB_*. The mysql driver requires user, host, port and
// name; sqlite only needs a file path.
func LoadDBConfig() DBConfig {
	c := DBConfig{
		Driver:  strings.ToLower(envStr("DB_DRIVER", "mysql")),
		Migrate: envBool("DB_MIGRATE", false),
	}
	switch c.Driver {
	case "sqlite", "sqlite3":
		c.Driver = "sqlite"
		c.Path = envStr("DB_PATH", "trains.db")
	case "mysql":
		c.User = must("DB_USER")
		c.Pass = os.Getenv("DB_PASS")
		c.Host = must("DB_HOST")
		c.Port = must("DB_PORT")
		c.Name = must("DB_NAME")
	default:
		log.Fatalf("unsupported DB_DRIVER: %q", c.Driver)
	}
	return c
}

func rabbitURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() followed by an integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
