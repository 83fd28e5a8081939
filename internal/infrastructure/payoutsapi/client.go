// Package payoutsapi talks to the payouts REST resource directly instead of
// going through the SDK. One legacy caller depends on the literal HTTP
// contract (bearer auth, Stripe-Account context header, limit=100), so the
// contract is reproduced here byte for byte.
package payoutsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/creatorhub/paygate/internal/domain"
	"github.com/creatorhub/paygate/internal/observability/telemetry"
	"github.com/creatorhub/paygate/pkg/config"
)

const defaultBaseURL = "https://api.stripe.com"

// APIError is a non-2xx response from the payouts resource, body included so
// the processor's own error detail is not lost.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payouts api: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	key     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewClient(key string, cfg config.CircuitBreakerConfig, log *zap.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stripe-payouts",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Payouts API circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: defaultBaseURL,
		key:     key,
		http:    &http.Client{Timeout: 30 * time.Second},
		breaker: cb,
		log:     log,
	}
}

// SetBaseURL points the client at a different endpoint. Test hook.
func (c *Client) SetBaseURL(url string) { c.baseURL = url }

// List fetches one page of payouts for a connected account, fixed at the
// historical page size of 100.
func (c *Client) List(ctx context.Context, accountID string) (*domain.PayoutList, error) {
	var list domain.PayoutList
	if err := c.get(ctx, "/v1/payouts?limit=100", accountID, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Retrieve fetches a single payout for a connected account.
func (c *Client) Retrieve(ctx context.Context, accountID, payoutID string) (*domain.Payout, error) {
	var p domain.Payout
	if err := c.get(ctx, "/v1/payouts/"+payoutID, accountID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, path, accountID string, v interface{}) error {
	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("Stripe-Account", accountID)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		}
		return body, nil
	})
	telemetry.ObserveRequest("payouts_api_get", start, err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			telemetry.PayoutsCircuitOpen.Inc()
			c.log.Warn("Payouts API request blocked, circuit open",
				zap.String("path", path),
				zap.String("account", accountID),
			)
		}
		return err
	}

	if err := json.Unmarshal(result.([]byte), v); err != nil {
		return fmt.Errorf("failed to decode payouts response: %w", err)
	}
	return nil
}
