package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "orle"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Pricing  PricingConfig
	Checkout CheckoutConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORLE_APP_ENV" default:"dev"`
	Port         string `envconfig:"ORLE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ORLE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORLE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	// Path points at an external catalog JSON file. Empty means the
	// embedded catalog ships with the binary.
	Path string `envconfig:"ORLE_CATALOG_PATH"`
}

type CartConfig struct {
	// IdleTTL is how long an untouched session cart survives before the
	// janitor drops it.
	IdleTTL       time.Duration `envconfig:"ORLE_CART_IDLE_TTL" default:"24h"`
	SweepInterval time.Duration `envconfig:"ORLE_CART_SWEEP_INTERVAL" default:"1h"`
}

type PricingConfig struct {
	ShippingCents int64  `envconfig:"ORLE_SHIPPING_CENTS" default:"700"`
	Currency      string `envconfig:"ORLE_CURRENCY" default:"DT"`
}

type CheckoutConfig struct {
	// SheetURL receives submitted orders. The collector is write-only;
	// no response body is consumed.
	SheetURL string `envconfig:"ORLE_ORDER_SHEET_URL" required:"true"`
}

func (c CheckoutConfig) validate() error {
	raw := strings.TrimSpace(c.SheetURL)
	if raw == "" {
		return fmt.Errorf("order sheet url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing order sheet url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("order sheet url must be http(s), got %q", raw)
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ORLE_CORS_ORIGINS" default:"http://localhost:3000,https://orle-skin.vercel.app"`
}
