package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Pricing      PricingConfig
	PubSub       PubSubConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VERDANTLY_APP_ENV" default:"dev"`
	Port         string `envconfig:"VERDANTLY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VERDANTLY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VERDANTLY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"VERDANTLY_DB_DSN"`
	SQLitePath string `envconfig:"VERDANTLY_SQLITE_PATH" default:"verdantly.db"`

	MaxOpenConns    int           `envconfig:"VERDANTLY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VERDANTLY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VERDANTLY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VERDANTLY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate(useSQLite bool) error {
	if useSQLite {
		if strings.TrimSpace(db.SQLitePath) == "" {
			return fmt.Errorf("VERDANTLY_SQLITE_PATH is required when sqlite is enabled")
		}
		return nil
	}
	if strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("VERDANTLY_DB_DSN is required")
	}
	return nil
}

type RedisConfig struct {
	// URL is optional; when unset the cart snapshot sink falls back to SQL.
	URL          string        `envconfig:"VERDANTLY_REDIS_URL"`
	Address      string        `envconfig:"VERDANTLY_REDIS_ADDR"`
	Password     string        `envconfig:"VERDANTLY_REDIS_PASSWORD"`
	DB           int           `envconfig:"VERDANTLY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VERDANTLY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VERDANTLY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VERDANTLY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VERDANTLY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VERDANTLY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint has been configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SessionConfig struct {
	CookieName string        `envconfig:"VERDANTLY_SESSION_COOKIE" default:"verdantly_session"`
	Header     string        `envconfig:"VERDANTLY_SESSION_HEADER" default:"X-Session-Id"`
	CookieTTL  time.Duration `envconfig:"VERDANTLY_SESSION_COOKIE_TTL" default:"168h"`
}

// PricingConfig carries the storefront pricing rules. Defaults match the
// published storefront behavior: 18% flat tax, a 99 flat shipping fee waived
// above a 999 subtotal, and a 7-day cart expiry window.
type PricingConfig struct {
	TaxRate               string        `envconfig:"VERDANTLY_PRICING_TAX_RATE" default:"0.18"`
	FlatShippingFee       string        `envconfig:"VERDANTLY_PRICING_FLAT_SHIPPING_FEE" default:"99"`
	FreeShippingThreshold string        `envconfig:"VERDANTLY_PRICING_FREE_SHIPPING_THRESHOLD" default:"999"`
	CartMaxAge            time.Duration `envconfig:"VERDANTLY_CART_MAX_AGE" default:"168h"`
}

func (p PricingConfig) validate() error {
	for name, raw := range map[string]string{
		"VERDANTLY_PRICING_TAX_RATE":                p.TaxRate,
		"VERDANTLY_PRICING_FLAT_SHIPPING_FEE":       p.FlatShippingFee,
		"VERDANTLY_PRICING_FREE_SHIPPING_THRESHOLD": p.FreeShippingThreshold,
	} {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if value.IsNegative() {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if p.CartMaxAge <= 0 {
		return fmt.Errorf("VERDANTLY_CART_MAX_AGE must be positive")
	}
	return nil
}

// TaxRateDecimal returns the parsed tax rate. validate has run by the time
// callers see a Config, so parsing cannot fail here.
func (p PricingConfig) TaxRateDecimal() decimal.Decimal {
	return decimal.RequireFromString(p.TaxRate)
}

func (p PricingConfig) FlatShippingFeeDecimal() decimal.Decimal {
	return decimal.RequireFromString(p.FlatShippingFee)
}

func (p PricingConfig) FreeShippingThresholdDecimal() decimal.Decimal {
	return decimal.RequireFromString(p.FreeShippingThreshold)
}

type PubSubConfig struct {
	ProjectID   string `envconfig:"VERDANTLY_PUBSUB_PROJECT_ID"`
	EventsTopic string `envconfig:"VERDANTLY_PUBSUB_EVENTS_TOPIC"`
}

// Enabled reports whether the Pub/Sub analytics sink should be wired.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ProjectID) != "" && strings.TrimSpace(p.EventsTopic) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VERDANTLY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VERDANTLY_AUTO_MIGRATE" default:"false"`
}
