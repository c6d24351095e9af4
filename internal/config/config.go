package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type DatabaseConfig struct {
	Dialect      string `envconfig:"DB_DIALECT" default:"postgres"`
	URL          string `envconfig:"DATABASE_URL"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
}

type PayPalConfig struct {
	ClientID     string `envconfig:"PAYPAL_CLIENT_ID"`
	ClientSecret string `envconfig:"PAYPAL_CLIENT_SECRET"`
	BaseURL      string `envconfig:"PAYPAL_BASE_URL" default:"https://api-m.sandbox.paypal.com"`
}

// Sandbox mirrors how the deployment picks the PayPal environment.
func (p PayPalConfig) Sandbox() bool {
	return strings.Contains(p.BaseURL, "sandbox")
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET"`
}

type EmailConfig struct {
	Provider     string `envconfig:"EMAIL_PROVIDER" default:"smtp"`
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	FromAddress  string `envconfig:"EMAIL_FROM_ADDRESS" default:"no-reply@teluguassociation.org"`
	FromName     string `envconfig:"EMAIL_FROM_NAME" default:"Telugu Association"`
}

type OAuthConfig struct {
	GoogleClientID   string `envconfig:"GOOGLE_CLIENT_ID"`
	FacebookGraphURL string `envconfig:"FACEBOOK_GRAPH_URL" default:"https://graph.facebook.com"`
}

type S3Config struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"auto"`
	Bucket          string `envconfig:"S3_BUCKET"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	PublicURL       string `envconfig:"S3_PUBLIC_URL"`
}

type AzureConfig struct {
	AccountName string `envconfig:"AZURE_STORAGE_ACCOUNT_NAME"`
	AccountKey  string `envconfig:"AZURE_STORAGE_ACCOUNT_KEY"`
	Container   string `envconfig:"AZURE_STORAGE_CONTAINER"`
}

type StorageConfig struct {
	Driver    string `envconfig:"STORAGE_DRIVER" default:"local"`
	UploadDir string `envconfig:"UPLOAD_DIR" default:"public/uploads"`
	MaxBytes  int    `envconfig:"UPLOAD_MAX_BYTES" default:"52428800"`
	S3        S3Config    `ignored:"true"`
	Azure     AzureConfig `ignored:"true"`
}

type Config struct {
	Env         string `envconfig:"APP_ENV" default:"production"`
	Port        int    `envconfig:"PORT" default:"8080"`
	PublicURL   string `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"2400h"`

	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"200"`

	PaymentGateway string `envconfig:"PAYMENT_GATEWAY" default:"paypal"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	Database DatabaseConfig `ignored:"true"`
	PayPal   PayPalConfig   `ignored:"true"`
	Stripe   StripeConfig   `ignored:"true"`
	Email    EmailConfig    `ignored:"true"`
	OAuth    OAuthConfig    `ignored:"true"`
	Storage  StorageConfig  `ignored:"true"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := new(Config)
	// Sections are processed one by one so their variables keep unprefixed names.
	sections := []interface{}{c, &c.Database, &c.PayPal, &c.Stripe, &c.Email, &c.OAuth, &c.Storage, &c.Storage.S3, &c.Storage.Azure}
	for _, s := range sections {
		if err := envconfig.Process("", s); err != nil {
			return nil, fmt.Errorf("process environment config: %w", err)
		}
	}
	c.PublicURL = strings.TrimRight(c.PublicURL, "/")
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("set JWT_SECRET"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("set DATABASE_URL"))
	}
	switch c.Database.Dialect {
	case "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DIALECT %q", c.Database.Dialect))
	}
	switch c.Storage.Driver {
	case "local", "s3", "azure":
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}
