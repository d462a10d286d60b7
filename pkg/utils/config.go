package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Payment   PaymentConfig
	Email     EmailConfig
	Inventory InventoryConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Env             string
	Debug           bool
	LogPath         string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// IsProduction reports whether cookies must be Secure and cross-site.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	MaxConns       int32
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
}

type JWTConfig struct {
	Secret     string
	ExpiryDays int
	CookieName string
}

type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type InventoryConfig struct {
	AllowBackorder bool
}

// LoadConfig reads an optional env file and overlays the process environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "plantnet")
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "plantnet")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_QUERY_TIMEOUT", "10s")
	v.SetDefault("TOKEN_EXPIRY_DAYS", 365)
	v.SetDefault("TOKEN_COOKIE_NAME", "token")
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("STOCK_ALLOW_BACKORDER", false)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Env:             v.GetString("APP_ENV"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
			RateLimitRPS:    v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			Name:           v.GetString("DB_NAME"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASS"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
			QueryTimeout:   v.GetDuration("DB_QUERY_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("ACCESS_TOKEN_SECRET"),
			ExpiryDays: v.GetInt("TOKEN_EXPIRY_DAYS"),
			CookieName: v.GetString("TOKEN_COOKIE_NAME"),
		},
		Payment: PaymentConfig{
			StripeSecretKey: v.GetString("STRIPE_SECRET_KEY"),
			Currency:        v.GetString("PAYMENT_CURRENCY"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		Inventory: InventoryConfig{
			AllowBackorder: v.GetBool("STOCK_ALLOW_BACKORDER"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is required")
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
