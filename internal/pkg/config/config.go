package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Stripe      StripeConfig
	Fulfillment FulfillmentConfig
	AMQP        AMQPConfig
	Tracing     TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Mexico_City"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Mexico_City"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-21600"` // -6*60*60
}

// Tokens are issued by the identity service; this service only validates them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type StripeConfig struct {
	SecretKey        string        `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret    string        `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
	WebhookTolerance time.Duration `envconfig:"STRIPE_WEBHOOK_TOLERANCE" default:"5m"`
	APIBaseURL       string        `envconfig:"STRIPE_API_BASE_URL"` // empty = api.stripe.com
	SuccessURL       string        `envconfig:"CHECKOUT_SUCCESS_URL" required:"true"`
	CancelURL        string        `envconfig:"CHECKOUT_CANCEL_URL" required:"true"`
	MaxBodyBytes     int64         `envconfig:"WEBHOOK_MAX_BODY_BYTES" default:"65536"`
}

type FulfillmentConfig struct {
	LedgerDriver    string        `envconfig:"FULFILLMENT_LEDGER_DRIVER" default:"postgres"` // postgres | bolt
	BoltPath        string        `envconfig:"FULFILLMENT_BOLT_PATH" default:"data/fulfillment.db"`
	ClaimStaleAfter time.Duration `envconfig:"FULFILLMENT_CLAIM_STALE_AFTER" default:"5m"`
	HandlerTimeout  time.Duration `envconfig:"FULFILLMENT_HANDLER_TIMEOUT" default:"10s"`
}

// Empty URL falls back to the notification_jobs outbox.
type AMQPConfig struct {
	URL        string `envconfig:"AMQP_URL"`
	Exchange   string `envconfig:"AMQP_EXCHANGE" default:"notifications"`
	RoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"notification.push"`
}

type TracingConfig struct {
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"checkout-fulfillment"`
	Environment string `envconfig:"ENV" default:"dev"`
}

const (
	LedgerDriverPostgres = "postgres"
	LedgerDriverBolt     = "bolt"

	claimStaleMarginFactor = 2
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Fulfillment.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c FulfillmentConfig) validate() error {
	switch c.LedgerDriver {
	case LedgerDriverPostgres, LedgerDriverBolt:
	default:
		return fmt.Errorf("unsupported FULFILLMENT_LEDGER_DRIVER %q", c.LedgerDriver)
	}
	if c.ClaimStaleAfter <= 0 {
		return fmt.Errorf("FULFILLMENT_CLAIM_STALE_AFTER must be positive, got %s", c.ClaimStaleAfter)
	}
	if c.HandlerTimeout <= 0 {
		return fmt.Errorf("FULFILLMENT_HANDLER_TIMEOUT must be positive, got %s", c.HandlerTimeout)
	}
	// A claim must not go stale while its handler can still be running.
	if c.HandlerTimeout*claimStaleMarginFactor > c.ClaimStaleAfter {
		return fmt.Errorf(
			"FULFILLMENT_HANDLER_TIMEOUT (%s) must be at most 1/%d of FULFILLMENT_CLAIM_STALE_AFTER (%s)",
			c.HandlerTimeout, claimStaleMarginFactor, c.ClaimStaleAfter,
		)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Mexico_City",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Mexico_City",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -21600,
		},
		JWT: JWTConfig{
			Secret: "test-jwt-secret",
		},
		Stripe: StripeConfig{
			SecretKey:        "sk_test_123",
			WebhookSecret:    "whsec_test_secret",
			WebhookTolerance: 5 * time.Minute,
			SuccessURL:       "http://localhost:3000/pago/exito?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:        "http://localhost:3000/pago/cancelado",
			MaxBodyBytes:     65536,
		},
		Fulfillment: FulfillmentConfig{
			LedgerDriver:    LedgerDriverPostgres,
			ClaimStaleAfter: 5 * time.Minute,
			HandlerTimeout:  10 * time.Second,
		},
		AMQP: AMQPConfig{
			Exchange:   "notifications",
			RoutingKey: "notification.push",
		},
		Tracing: TracingConfig{
			ServiceName: "checkout-fulfillment-test",
			Environment: "test",
		},
	}
}
