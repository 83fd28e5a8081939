// Command paygate is an operational smoke tool: it loads the gateway
// configuration the same way a host application would and runs one read-only
// operation against the configured environment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/creatorhub/paygate/internal/adapter/vault"
	"github.com/creatorhub/paygate/internal/gateway"
	"github.com/creatorhub/paygate/internal/infrastructure/payoutsapi"
	"github.com/creatorhub/paygate/internal/observability/telemetry"
	"github.com/creatorhub/paygate/pkg/config"
)

func main() {
	var (
		op      = flag.String("op", "balance", "operation: balance | payouts | payouts-raw | vendor")
		account = flag.String("account", "", "connected account id")
		after   = flag.String("starting-after", "", "pagination cursor for payouts")
		timeout = flag.Duration("timeout", 30*time.Second, "per-call deadline")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token, cfg.Vault.Path)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		live, test, err := sm.GetStripeKeys()
		if err != nil {
			logger.Fatal("Failed to read Stripe keys from Vault", zap.Error(err))
		}
		cfg.Stripe.LiveKey = live
		cfg.Stripe.TestKey = test
	}

	if cfg.Telemetry.TracingEnabled {
		tp, err := telemetry.InitTracer(cfg.App.Name, cfg.App.Version, cfg.Telemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer tp.Shutdown(context.Background())
	}

	gw := gateway.New(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var result interface{}
	switch *op {
	case "balance":
		result, err = gw.Balance(ctx, *account)
	case "payouts":
		result, err = gw.ListPayouts(ctx, *account, *after, "")
	case "payouts-raw":
		// the raw payouts contract has always run against the live key
		client := payoutsapi.NewClient(cfg.Stripe.LiveKey, cfg.CircuitBreaker, logger)
		result, err = client.List(ctx, *account)
	case "vendor":
		result, err = gw.RetrieveVendor(ctx, *account)
	default:
		logger.Fatal("Unknown operation", zap.String("op", *op))
	}
	if err != nil {
		logger.Fatal("Operation failed", zap.String("op", *op), zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
