package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"

	"github.com/dmitrijs2005/spabook/internal/client/models"
	"github.com/dmitrijs2005/spabook/internal/common"
	"github.com/dmitrijs2005/spabook/internal/logging"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type HTTPOptions struct {
	BaseURL string
	Timeout time.Duration

	// MaxRetries applies to idempotent reads only. The token exchange and
	// every POST are attempted exactly once.
	MaxRetries uint64
	RetryBase  time.Duration

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration

	HTTPClient *http.Client
	Logger     logging.Logger
}

// HTTPClient talks JSON to the booking API.
type HTTPClient struct {
	baseURL    *url.URL
	http       *http.Client
	breaker    *gobreaker.CircuitBreaker
	maxRetries uint64
	retryBase  time.Duration
	log        logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts HTTPOptions) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", base.Scheme)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop{}
	}

	retryBase := opts.RetryBase
	if retryBase <= 0 {
		retryBase = 200 * time.Millisecond
	}

	breakerTimeout := opts.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	c := &HTTPClient{
		baseURL:    base,
		http:       hc,
		maxRetries: opts.MaxRetries,
		retryBase:  retryBase,
		log:        log,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "booking-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Only transport failures and 5xx count against the API. A rejected
		// token is a healthy answer.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c, nil
}

type messageResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (m messageResponse) text() string {
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

type verifyEmailResponse struct {
	messageResponse
	AlreadyVerified bool         `json:"alreadyVerified"`
	Token           string       `json:"token"`
	User            *models.User `json:"user"`
}

// outcome turns the loosely shaped server answer into exactly one variant.
// Anything short of valid credentials is not a session.
func (r verifyEmailResponse) outcome() models.VerificationOutcome {
	if r.AlreadyVerified {
		return models.AlreadyVerified{Message: r.text()}
	}
	creds := models.Credentials{Token: r.Token}
	if r.User != nil {
		creds.User = *r.User
	}
	if creds.Valid() {
		return models.Verified{Message: r.text(), Credentials: creds}
	}
	return models.PlainSuccess{Message: r.text()}
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token string) (models.VerificationOutcome, error) {
	var resp verifyEmailResponse
	path := "/auth/verify-email/" + url.PathEscape(token)
	if err := c.call(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Success != nil && !*resp.Success {
		return nil, &APIError{Status: http.StatusOK, Message: resp.text()}
	}

	out := resp.outcome()
	if _, ok := out.(models.PlainSuccess); ok && (resp.Token != "" || resp.User != nil) {
		c.log.Warn(ctx, "verification response carried a partial session, ignoring it")
	}
	return out, nil
}

func (c *HTTPClient) ResendVerificationEmail(ctx context.Context, email string) (string, error) {
	return c.postEmail(ctx, "/auth/resend-verification", email)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.postEmail(ctx, "/auth/forgot-password", email)
}

func (c *HTTPClient) postEmail(ctx context.Context, path, email string) (string, error) {
	var resp messageResponse
	body := map[string]string{"email": email}
	if err := c.call(ctx, http.MethodPost, path, body, &resp); err != nil {
		return "", err
	}
	if resp.Success != nil && !*resp.Success {
		return "", &APIError{Status: http.StatusOK, Message: resp.text()}
	}
	return resp.text(), nil
}

func (c *HTTPClient) ListServices(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := c.getList(ctx, "/services", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	var items []models.FAQ
	if err := c.getList(ctx, "/faqs", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.callWithRetry(ctx, "/health", nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// getList accepts either a bare JSON array or an envelope {"data": [...]}.
func (c *HTTPClient) getList(ctx context.Context, path string, out any) error {
	var raw json.RawMessage
	if err := c.callWithRetry(ctx, path, &raw); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		trimmed = envelope.Data
	}
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) callWithRetry(ctx context.Context, path string, out any) error {
	b := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.call(ctx, http.MethodGet, path, nil, out)
		if err != nil && errors.Is(err, ErrUnavailable) && c.breaker.State() != gobreaker.StateOpen {
			c.log.Debug(ctx, "retrying api call", "path", path, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

// call performs one request through the circuit breaker.
func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var m messageResponse
		_ = json.Unmarshal(data, &m)
		return &APIError{Status: resp.StatusCode, Message: m.text()}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
