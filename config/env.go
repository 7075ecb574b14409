package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv string
	Port   string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string
	StripeAPIURL         string
	StripeCurrency       string
	StripeTimeout        time.Duration

	SiteURL               string
	DefaultLocale         string
	StaticDir             string
	AllowedCountries      []string
	ExpressShippingAmount float64

	JWTSecret     string
	JWTExpiry     time.Duration
	AdminEmail    string
	AdminPassword string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	KafkaBrokers []string
	KafkaTopic   string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	OriginURL string
}

const defaultJWTSecret = "secret"

var (
	ErrDefaultJWTSecret     = errors.New("JWT_SECRET must be set in production")
	ErrMissingWebhookSecret = errors.New("STRIPE_WEBHOOK_SECRET must be set in production")
)

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	AppConfig = FromEnv()
	ConfigureLogger(AppConfig.AppEnv)

	if err := AppConfig.Validate(); err != nil {
		log.WithError(err).Fatal("Refusing to start with insecure configuration")
	}

	log.WithFields(log.Fields{
		"env":  AppConfig.AppEnv,
		"port": AppConfig.Port,
	}).Info("Configuration loaded")
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	jwtExpiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	stripeTimeout, err := time.ParseDuration(getEnv("STRIPE_TIMEOUT", "10s"))
	if err != nil {
		stripeTimeout = 10 * time.Second
	}

	express, err := strconv.ParseFloat(getEnv("EXPRESS_SHIPPING_AMOUNT", "35"), 64)
	if err != nil || express < 0 {
		express = 35
	}

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("APP_PORT", getEnv("PORT", "8080")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "fashion_store"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAPIURL:         getEnv("STRIPE_API_URL", "https://api.stripe.com"),
		StripeCurrency:       strings.ToLower(getEnv("STRIPE_CURRENCY", "sar")),
		StripeTimeout:        stripeTimeout,

		SiteURL:               strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		DefaultLocale:         getEnv("DEFAULT_LOCALE", "ar"),
		StaticDir:             getEnv("STATIC_DIR", "./out"),
		AllowedCountries:      splitList(getEnv("SHIPPING_COUNTRIES", "SA,AE,KW,BH,QA,OM")),
		ExpressShippingAmount: express,

		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:     jwtExpiry,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "orders"),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		OriginURL: os.Getenv("ORIGIN_URL"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects settings that would leave admin tokens forgeable or
// webhooks unverifiable. Outside production they are only logged.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == defaultJWTSecret {
		errs = append(errs, ErrDefaultJWTSecret)
	}
	if c.StripeWebhookSecret == "" {
		errs = append(errs, ErrMissingWebhookSecret)
	}
	if len(errs) == 0 {
		return nil
	}
	if c.IsProduction() {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		log.Warn(err.Error())
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
