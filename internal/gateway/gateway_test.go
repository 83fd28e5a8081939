package gateway

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/creatorhub/paygate/pkg/config"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "paygate",
			Environment: "test",
		},
		Stripe: config.StripeConfig{
			LiveKey:       "sk_live_fake",
			TestKey:       "sk_test_fake",
			Currency:      "usd",
			ProductName:   "CreatorHub",
			ProductURL:    "https://creatorhub.example",
			OnboardingURL: "https://creatorhub.example/onboarding",
		},
	}
}

// recorder captures every request the gateway issues against the fake
// processor, form bodies decoded.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Form   url.Values
}

func (r *recorder) record(req *http.Request) recordedRequest {
	req.ParseForm()
	rec := recordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Header: req.Header.Clone(),
		Form:   req.Form,
	}
	r.mu.Lock()
	r.requests = append(r.requests, rec)
	r.mu.Unlock()
	return rec
}

func (r *recorder) count(method, path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, req := range r.requests {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

func (r *recorder) last() recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

// newTestGateway spins up a fake processor behind both SDK backends.
func newTestGateway(t *testing.T, handler func(w http.ResponseWriter, rec recordedRequest)) (*Gateway, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handler(w, rec.record(req))
	}))
	t.Cleanup(srv.Close)

	backendConfig := &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	api := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)
	uploads := stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig)

	return NewWithBackends(testConfig(), api, uploads, newTestLogger()), rec
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func writeStripeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"` + code + `","message":"` + message + `"}}`))
}

func TestKeySelection(t *testing.T) {
	cases := []struct {
		env  string
		want string
	}{
		{"production", "sk_live_fake"},
		{"test", "sk_test_fake"},
		{"staging", "sk_test_fake"},
		{"", "sk_test_fake"},
		{"Production", "sk_test_fake"}, // only the exact marker selects live
	}

	for _, tc := range cases {
		cfg := testConfig()
		cfg.App.Environment = tc.env
		g := NewWithBackends(cfg, nil, nil, newTestLogger())

		// constant across repeated calls
		for i := 0; i < 3; i++ {
			if got := g.key(); got != tc.want {
				t.Errorf("env %q: key() = %q, want %q", tc.env, got, tc.want)
			}
		}
	}
}
