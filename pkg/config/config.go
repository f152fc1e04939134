package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "UBN"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Env var names referenced from tests and ops tooling.
const (
	EnvAppEnv = "UBN_APP_ENV"
	EnvPort   = "UBN_APP_PORT"
)

type Config struct {
	App      AppConfig
	Checkout CheckoutConfig
	Session  SessionConfig
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
	Env          string `envconfig:"UBN_APP_ENV" required:"true"`
	Port         string `envconfig:"UBN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"UBN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"UBN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CheckoutConfig carries the pricing constants the engine depends on.
// Values default to the observed production configuration.
type CheckoutConfig struct {
	CODShippingFee    int           `envconfig:"UBN_CHECKOUT_COD_SHIPPING_FEE" default:"99"`
	TaxRatePercent    float64       `envconfig:"UBN_CHECKOUT_TAX_RATE_PERCENT" default:"5"`
	LoyaltyPercent    float64       `envconfig:"UBN_CHECKOUT_LOYALTY_PERCENT" default:"5"`
	BaseTierOne       float64       `envconfig:"UBN_CHECKOUT_BASE_TIER_ONE" default:"10"`
	BaseTierTwo       float64       `envconfig:"UBN_CHECKOUT_BASE_TIER_TWO" default:"20"`
	BaseTierThreePlus float64       `envconfig:"UBN_CHECKOUT_BASE_TIER_THREE_PLUS" default:"30"`
	SimulatedDelay    time.Duration `envconfig:"UBN_CHECKOUT_SIMULATED_DELAY" default:"3s"`
}

func (c CheckoutConfig) validate() error {
	if c.CODShippingFee < 0 {
		return fmt.Errorf("cod shipping fee must be non-negative")
	}
	if c.TaxRatePercent < 0 {
		return fmt.Errorf("tax rate must be non-negative")
	}
	if c.BaseTierOne > c.BaseTierTwo || c.BaseTierTwo > c.BaseTierThreePlus {
		return fmt.Errorf("base discount tiers must be non-decreasing")
	}
	return nil
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"UBN_SESSION_TTL" default:"1h"`
	SweepInterval time.Duration `envconfig:"UBN_SESSION_SWEEP_INTERVAL" default:"5m"`
}
