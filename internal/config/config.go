package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"

	StatusPolicyPermissive = "permissive"
	StatusPolicyTerminal   = "terminal"
)

// Config is the full runtime configuration. AWS settings use the SDK's usual
// env var names (AWS_REGION, AWS_ACCESS_KEY_ID, ...).
type Config struct {
	App         AppConfig
	DynamoDB    DynamoDBConfig
	Catalog     CatalogConfig
	Redis       RedisConfig
	MercadoPago MercadoPagoConfig
	Events      EventsConfig
	Quotes      QuotesConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Quotes.Storage = strings.ToLower(strings.TrimSpace(cfg.Quotes.Storage))
	cfg.Quotes.StatusPolicy = strings.ToLower(strings.TrimSpace(cfg.Quotes.StatusPolicy))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Quotes.Storage {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("invalid QUOTES_STORAGE %q", c.Quotes.Storage)
	}
	switch c.Quotes.StatusPolicy {
	case StatusPolicyPermissive, StatusPolicyTerminal:
	default:
		return fmt.Errorf("invalid QUOTES_STATUS_POLICY %q", c.Quotes.StatusPolicy)
	}
	return nil
}

type AppConfig struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	GinMode   string `envconfig:"GIN_MODE" default:"debug"`
}

type DynamoDBConfig struct {
	Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	Endpoint        string `envconfig:"DYNAMODB_ENDPOINT"`
	QuotesTable     string `envconfig:"QUOTES_TABLE" default:"quotes"`
	PaymentsTable   string `envconfig:"PAYMENTS_TABLE" default:"quote_payments"`
}

// CatalogConfig points at the read-only directory database (clients, parts,
// service types, service orders) owned by the management console.
type CatalogConfig struct {
	Driver string `envconfig:"CATALOG_DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"CATALOG_DB_DSN"`
}

type RedisConfig struct {
	URL      string        `envconfig:"REDIS_URL"`
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

// Enabled reports whether catalog lookups should go through Redis.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type MercadoPagoConfig struct {
	AccessToken    string `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	Mock           bool   `envconfig:"PAYMENT_GATEWAY_MOCK" default:"false"`
	TestPayerEmail string `envconfig:"MERCADOPAGO_TEST_PAYER_EMAIL"`
}

type EventsConfig struct {
	QueueURL string `envconfig:"QUOTE_EVENTS_QUEUE_URL"`
}

type QuotesConfig struct {
	Storage      string `envconfig:"QUOTES_STORAGE" default:"dynamodb"`
	StatusPolicy string `envconfig:"QUOTES_STATUS_POLICY" default:"permissive"`
}
