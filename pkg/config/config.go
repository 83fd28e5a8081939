package config

import "time"

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Stripe         StripeConfig         `mapstructure:"stripe"`
	Vault          VaultConfig          `mapstructure:"vault"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Telemetry      TelemetryConfig      `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StripeConfig carries both per-environment secrets; the gateway picks one
// based on App.Environment at call time.
type StripeConfig struct {
	LiveKey  string `mapstructure:"live_key"`
	TestKey  string `mapstructure:"test_key"`
	Currency string `mapstructure:"currency"`

	// ProductName becomes the default statement descriptor on charges.
	ProductName string `mapstructure:"product_name"`
	// ProductURL backs the business profile on connected accounts.
	ProductURL string `mapstructure:"product_url"`
	// OnboardingURL is the default return/refresh target for account links.
	OnboardingURL string `mapstructure:"onboarding_url"`

	// SplitPayments routes a destination share of each charge to the vendor
	// account instead of keeping the full amount on the platform.
	SplitPayments bool `mapstructure:"split_payments"`
}

type VaultConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Token   string `mapstructure:"token"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

type TelemetryConfig struct {
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}
