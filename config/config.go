package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigurationError reports an invalid or missing setting detected at load
// time, before any browser or storage resource is opened.
type ConfigurationError struct {
	Setting string
	Msg     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Setting, e.Msg)
}

// Config holds all application configuration. Values come from environment
// variables (optionally via a .env file), with an optional YAML file taking
// precedence when CONFIG_FILE points at one.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Scraper ScraperConfig `yaml:"scraper"`
	Storage StorageConfig `yaml:"storage"`
}

// SourceConfig identifies the site being crawled.
type SourceConfig struct {
	BaseURL   string `yaml:"base_url"`
	ScrapeURL string `yaml:"scrape_url"`
}

// ScraperConfig tunes the browser session and the crawl loop.
type ScraperConfig struct {
	Headless       bool    `yaml:"headless"`
	ChromeBin      string  `yaml:"chrome_bin"`
	NavTimeoutSec  int     `yaml:"nav_timeout_sec"`
	WaitTimeoutSec int     `yaml:"wait_timeout_sec"`
	MinDelaySec    float64 `yaml:"min_delay_sec"`
	MaxDelaySec    float64 `yaml:"max_delay_sec"`
	MaxPages       int     `yaml:"max_pages"`
	ListingLimit   int     `yaml:"listing_limit"`
	MaxRetries     int     `yaml:"max_retries"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend  string         `yaml:"backend"` // csv, mongo or postgres
	CSVDir   string         `yaml:"csv_dir"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MongoConfig holds document-store connection settings.
type MongoConfig struct {
	URI             string `yaml:"uri"`
	Database        string `yaml:"database"`
	MaxPoolSize     uint64 `yaml:"max_pool_size"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

// PostgresConfig holds relational-store connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DB       string `yaml:"db"`
	SSLMode  string `yaml:"ssl_mode"`
}

// Load reads the .env file, environment variables and the optional YAML file
// named by CONFIG_FILE, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		Source: SourceConfig{
			BaseURL:   getEnv("BASE_URL", "https://www.immobiliare.it/"),
			ScrapeURL: getEnv("SCRAPE_URL", "https://www.immobiliare.it/vendita-case/milano/?criterio=data&ordine=desc"),
		},
		Scraper: ScraperConfig{
			Headless:       getEnvBool("HEADLESS", true),
			ChromeBin:      getEnv("CHROME_BIN", ""),
			NavTimeoutSec:  getEnvInt("NAV_TIMEOUT_SEC", 60),
			WaitTimeoutSec: getEnvInt("WAIT_TIMEOUT_SEC", 10),
			MinDelaySec:    getEnvFloat("MIN_DELAY_SEC", 1.0),
			MaxDelaySec:    getEnvFloat("MAX_DELAY_SEC", 3.0),
			MaxPages:       getEnvInt("MAX_PAGES", 80),
			ListingLimit:   getEnvInt("LISTING_LIMIT", 3000),
			MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "csv"),
			CSVDir:  getEnv("CSV_OUTPUT_DIR", "./output"),
			Mongo: MongoConfig{
				URI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
				Database:        getEnv("MONGO_DB", "real_estate"),
				MaxPoolSize:     uint64(getEnvInt("MONGO_MAX_POOL_SIZE", 10)),
				WriteTimeoutSec: getEnvInt("MONGO_WRITE_TIMEOUT_SEC", 30),
			},
			Postgres: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnv("POSTGRES_PORT", "5432"),
				User:     getEnv("POSTGRES_USER", "scraper"),
				Password: getEnv("POSTGRES_PASSWORD", "scraper123"),
				DB:       getEnv("POSTGRES_DB", "real_estate"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays settings from a YAML file on top of the env-derived
// values. Fields absent from the file keep their current value.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigurationError{Setting: "CONFIG_FILE", Msg: fmt.Sprintf("cannot read %q: %v", path, err)}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigurationError{Setting: "CONFIG_FILE", Msg: fmt.Sprintf("cannot parse %q: %v", path, err)}
	}
	log.Printf("[config] Applied config file: %s", path)
	return nil
}

// Validate checks cross-field consistency. Called by Load; exposed for
// hand-built configs in tests.
func (c *Config) Validate() error {
	if c.Source.BaseURL == "" {
		return &ConfigurationError{Setting: "BASE_URL", Msg: "must not be empty"}
	}
	if c.Source.ScrapeURL == "" {
		return &ConfigurationError{Setting: "SCRAPE_URL", Msg: "must not be empty"}
	}
	if c.Scraper.MinDelaySec < 0 {
		return &ConfigurationError{Setting: "MIN_DELAY_SEC", Msg: "must not be negative"}
	}
	if c.Scraper.MaxDelaySec < c.Scraper.MinDelaySec {
		return &ConfigurationError{Setting: "MAX_DELAY_SEC", Msg: "must be >= MIN_DELAY_SEC"}
	}
	if c.Scraper.MaxPages < 1 {
		return &ConfigurationError{Setting: "MAX_PAGES", Msg: "must be at least 1"}
	}
	if c.Scraper.ListingLimit < 1 {
		return &ConfigurationError{Setting: "LISTING_LIMIT", Msg: "must be at least 1"}
	}
	switch c.Storage.Backend {
	case "csv", "mongo", "postgres":
	default:
		return &ConfigurationError{Setting: "STORAGE_BACKEND", Msg: fmt.Sprintf("unknown backend %q", c.Storage.Backend)}
	}
	return nil
}

// NavTimeout is the per-navigation deadline.
func (c *ScraperConfig) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutSec) * time.Second
}

// WaitTimeout is the deadline for individual element waits.
func (c *ScraperConfig) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutSec) * time.Second
}

// MongoWriteTimeout bounds each document-store operation.
func (c *MongoConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DB +
		" sslmode=" + c.SSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
