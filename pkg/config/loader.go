package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("PAYGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow the historical env var names without the PAYGATE_ prefix so
	// existing deploys keep working.
	viper.BindEnv("app.environment", "NODE_ENV", "PAYGATE_APP_ENVIRONMENT")
	viper.BindEnv("stripe.live_key", "STRIPE_KEY_PROD", "PAYGATE_STRIPE_LIVE_KEY")
	viper.BindEnv("stripe.test_key", "STRIPE_KEY_TEST", "PAYGATE_STRIPE_TEST_KEY")
	viper.BindEnv("stripe.product_name", "PRODUCT_NAME")
	viper.BindEnv("stripe.product_url", "PRODUCT_WEBSITE_URL")
	viper.BindEnv("stripe.onboarding_url", "HOME_PAGE")
	viper.BindEnv("stripe.split_payments", "DO_SPLIT_PAYMENT")
	viper.BindEnv("vault.address", "VAULT_ADDR")
	viper.BindEnv("vault.token", "VAULT_TOKEN")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	viper.SetDefault("stripe.currency", "usd")
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", "60s")
	viper.SetDefault("circuit_breaker.timeout", "30s")
	viper.SetDefault("circuit_breaker.failure_threshold", 5)
	viper.SetDefault("vault.path", "secret/data/stripe")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// env vars only is a supported deploy mode
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
