package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host        string   `yaml:"host" env:"SERVER_HOST"`
	Port        int      `yaml:"port" env:"SERVER_PORT"`
	Env         string   `yaml:"env" env:"SERVER_ENV"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	DSN         string `yaml:"url" env:"DATABASE_URL"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE"`
}

type JWTConfig struct {
	Secret       string `yaml:"secret" env:"JWT_SECRET"`
	TTLHours     int    `yaml:"ttl_hours" env:"JWT_TTL_HOURS"`
	CookieName   string `yaml:"cookie_name" env:"JWT_COOKIE_NAME"`
	CookieDomain string `yaml:"cookie_domain" env:"JWT_COOKIE_DOMAIN"`
}

type AdminConfig struct {
	FirstEmail    string `yaml:"first_email" env:"FIRST_ADMIN_EMAIL"`
	FirstPassword string `yaml:"first_password" env:"FIRST_ADMIN_PASSWORD"`
	SetupKey      string `yaml:"setup_key" env:"ADMIN_SETUP_KEY"`
}

type EmailConfig struct {
	Provider     string `yaml:"provider" env:"EMAIL_PROVIDER"` // smtp, resend, noop
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUsername string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	ResendAPIKey string `yaml:"resend_api_key" env:"RESEND_API_KEY"`
	FromEmail    string `yaml:"from_email" env:"EMAIL_FROM"`
	FromName     string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
	TemplatesDir string `yaml:"templates_dir" env:"EMAIL_TEMPLATES_DIR"`
}

type StorageConfig struct {
	Type       string `yaml:"type" env:"STORAGE_TYPE"` // local, s3, cloudflare_r2
	BasePath   string `yaml:"base_path" env:"STORAGE_BASE_PATH"`
	BaseURL    string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	Bucket     string `yaml:"bucket" env:"STORAGE_BUCKET"`
	Region     string `yaml:"region" env:"STORAGE_REGION"`
	AccessKey  string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
	SecretKey  string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
	Endpoint   string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
	PublicRead bool   `yaml:"public_read" env:"STORAGE_PUBLIC_READ"`
}

type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size" env:"UPLOAD_MAX_SIZE"`
	AllowedTypes []string `yaml:"allowed_types" env:"UPLOAD_ALLOWED_TYPES" envSeparator:","`
}

type InstagramConfig struct {
	ClientID     string `yaml:"client_id" env:"INSTAGRAM_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"INSTAGRAM_CLIENT_SECRET"`
	RedirectURL  string `yaml:"redirect_url" env:"INSTAGRAM_REDIRECT_URL"`
	AuthURL      string `yaml:"auth_url" env:"INSTAGRAM_AUTH_URL"`
	TokenURL     string `yaml:"token_url" env:"INSTAGRAM_TOKEN_URL"`
	GraphURL     string `yaml:"graph_url" env:"INSTAGRAM_GRAPH_URL"`
	MediaLimit   int    `yaml:"media_limit" env:"INSTAGRAM_MEDIA_LIMIT"`
}

type PricingConfig struct {
	BaseRate float64 `yaml:"base_rate" env:"PRICING_BASE_RATE"`
	Currency string  `yaml:"currency" env:"PRICING_CURRENCY"`
}

type WorkersConfig struct {
	DeadlineCheckMinutes int `yaml:"deadline_check_minutes" env:"DEADLINE_CHECK_MINUTES"` // 0 - по умолчанию, <0 - выключено
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Admin     AdminConfig     `yaml:"admin"`
	Email     EmailConfig     `yaml:"email"`
	Storage   StorageConfig   `yaml:"storage"`
	Upload    UploadConfig    `yaml:"upload"`
	Instagram InstagramConfig `yaml:"instagram"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Workers   WorkersConfig   `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию в AppConfig. Ошибка - фатальна.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

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

// Load читает YAML (если файл есть), накладывает переменные окружения и значения по умолчанию.
// Отсутствие файла допустимо, если DATABASE_URL задан в окружении.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if os.Getenv("DATABASE_URL") == "" {
			return nil, fmt.Errorf("config file %s not found and DATABASE_URL is not set", path)
		}
	default:
		return nil, fmt.Errorf("open config file %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret (JWT_SECRET) is required")
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 7 * 24
	}
	if cfg.JWT.CookieName == "" {
		cfg.JWT.CookieName = "token"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 20 * 1024 * 1024 // 20MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/webp",
			"video/mp4", "video/quicktime",
		}
	}
	if cfg.Instagram.AuthURL == "" {
		cfg.Instagram.AuthURL = "https://api.instagram.com/oauth/authorize"
	}
	if cfg.Instagram.TokenURL == "" {
		cfg.Instagram.TokenURL = "https://api.instagram.com/oauth/access_token"
	}
	if cfg.Instagram.GraphURL == "" {
		cfg.Instagram.GraphURL = "https://graph.instagram.com"
	}
	if cfg.Instagram.MediaLimit == 0 {
		cfg.Instagram.MediaLimit = 12
	}
	if cfg.Pricing.BaseRate == 0 {
		cfg.Pricing.BaseRate = 100
	}
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = "INR"
	}
	if cfg.Workers.DeadlineCheckMinutes == 0 {
		cfg.Workers.DeadlineCheckMinutes = 60
	}
}

// IsProduction - для Secure cookie и скрытия деталей ошибок
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
