package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host            string   `yaml:"host"`
		Port            int      `yaml:"port"`
		Env             string   `yaml:"env"`
		ShutdownTimeout int      `yaml:"shutdown_timeout"` // секунды
		AllowedOrigins  []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN             string `yaml:"url"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		SlowQueryMillis int    `yaml:"slow_query_ms"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		Issuer    string `yaml:"issuer"`
	} `yaml:"auth"`

	Site struct {
		BaseURL      string `yaml:"base_url"`
		CookieDomain string `yaml:"cookie_domain"`
	} `yaml:"site"`

	Storage struct {
		Type       string `yaml:"type"`      // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"` // для local
		BaseURL    string `yaml:"base_url"`
		Bucket     string `yaml:"bucket"`
		Region     string `yaml:"region"`
		AccessKey  string `yaml:"access_key"`
		SecretKey  string `yaml:"secret_key"`
		Endpoint   string `yaml:"endpoint"`
		AccountID  string `yaml:"account_id"` // для R2
		PublicRead bool   `yaml:"public_read"`
	} `yaml:"storage"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Messaging struct {
		NATSURL string `yaml:"nats_url"`
	} `yaml:"messaging"`

	PDF struct {
		APIURL         string `yaml:"api_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"pdf"`

	Recaptcha struct {
		SecretKey      string  `yaml:"secret_key"`
		VerifyURL      string  `yaml:"verify_url"`
		MinScore       float64 `yaml:"min_score"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"recaptcha"`

	CV struct {
		Archive bool `yaml:"archive"`
	} `yaml:"cv"`

	Views struct {
		LatchTTLMinutes int `yaml:"latch_ttl_minutes"`
		MaxLatches      int `yaml:"max_latches"`
	} `yaml:"views"`

	Sitemap struct {
		ExportEnabled   bool `yaml:"export_enabled"`
		IntervalMinutes int  `yaml:"interval_minutes"`
	} `yaml:"sitemap"`

	Workers struct {
		CompetitionIntervalMinutes int `yaml:"competition_interval_minutes"`
	} `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig читает .env, YAML и переменные окружения в AppConfig.
// Без DATABASE_URL конфиг-файл обязателен.
func LoadConfig() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load собирает конфиг из файла (если он есть) и окружения
func Load(path string) (*Config, error) {
	var cfg Config

	if err := LoadFromFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) || os.Getenv("DATABASE_URL") == "" {
			return nil, err
		}
		log.Printf("config file %s not found, using environment only", path)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database url is not set (database.url or DATABASE_URL)")
	}
	return &cfg, nil
}

func LoadFromFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("SERVER_ENV", &cfg.Server.Env)
	setString("JWT_SECRET", &cfg.Auth.JWTSecret)
	setString("SITE_BASE_URL", &cfg.Site.BaseURL)
	setString("PDF_API_KEY", &cfg.PDF.APIKey)
	setString("PDF_API_URL", &cfg.PDF.APIURL)
	setString("RECAPTCHA_SECRET_KEY", &cfg.Recaptcha.SecretKey)
	setString("REDIS_URL", &cfg.Redis.URL)
	setString("NATS_URL", &cfg.Messaging.NATSURL)

	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", portStr, err)
		}
		cfg.Server.Port = port
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.SlowQueryMillis == 0 {
		cfg.Database.SlowQueryMillis = 200
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "http://localhost:3000"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/files"
	}
	if cfg.PDF.APIURL == "" {
		cfg.PDF.APIURL = "https://api.pdfshift.io/v3/convert/pdf"
	}
	if cfg.PDF.TimeoutSeconds == 0 {
		cfg.PDF.TimeoutSeconds = 30
	}
	if cfg.Recaptcha.VerifyURL == "" {
		cfg.Recaptcha.VerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	}
	if cfg.Recaptcha.TimeoutSeconds == 0 {
		cfg.Recaptcha.TimeoutSeconds = 10
	}
	if cfg.Views.LatchTTLMinutes == 0 {
		cfg.Views.LatchTTLMinutes = 30
	}
	if cfg.Views.MaxLatches == 0 {
		cfg.Views.MaxLatches = 100000
	}
	if cfg.Sitemap.IntervalMinutes == 0 {
		cfg.Sitemap.IntervalMinutes = 60
	}
	if cfg.Workers.CompetitionIntervalMinutes == 0 {
		cfg.Workers.CompetitionIntervalMinutes = 15
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
