package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/qween-code/barter-qween/internal/types"
)

const (
	defaultGatewayTimeout   = 10 * time.Second
	defaultGatewayBatchSize = 500
	defaultGatewayRPS       = 20
	maxRetries              = 2
	userAgent               = "barter-qween-notifier/v1"
)

// MulticastRequest is the JSON payload POSTed to the push gateway.
type MulticastRequest struct {
	Tokens       []types.DeviceToken `json:"tokens"`
	Notification types.Notification  `json:"notification"`
	Data         map[string]string   `json:"data"`
}

// PushGatewayConfig holds the configuration for creating a PushGateway.
type PushGatewayConfig struct {
	URL            string
	TimeoutSeconds int
	// AuthToken is sent as a bearer token when non-empty.
	AuthToken string
	// RequestsPerSecond throttles outbound requests; 0 means the default.
	RequestsPerSecond float64
	// BatchSize caps the tokens per HTTP request; 0 means the default (500).
	BatchSize int
}

// PushGateway implements types.PushTransport against an HTTP push gateway.
// Large token sets are split into batches; each batch is retried on
// transient failures.
type PushGateway struct {
	httpClient *http.Client
	logger     *zap.Logger
	url        string
	authToken  string
	batchSize  int
	limiter    *rate.Limiter
}

// NewPushGateway creates a PushGateway. Returns an error if the URL is invalid.
func NewPushGateway(logger *zap.Logger, cfg PushGatewayConfig) (*PushGateway, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("push gateway URL is required")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid push gateway URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("push gateway URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("push gateway URL must include a host")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = defaultGatewayTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultGatewayRPS
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultGatewayBatchSize
	}

	return &PushGateway{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("push-gateway"),
		url:        cfg.URL,
		authToken:  cfg.AuthToken,
		batchSize:  batch,
		limiter:    rate.NewLimiter(rate.Limit(rps), max(1, int(rps))),
	}, nil
}

// SendMulticast implements types.PushTransport. A batch that fails outright
// counts all of its tokens as failures; an error is returned only when no
// batch could be delivered.
func (g *PushGateway) SendMulticast(ctx context.Context, tokens []types.DeviceToken, n types.Notification, data map[string]string) (types.MulticastResult, error) {
	var (
		total    types.MulticastResult
		lastErr  error
		batchErr int
		batches  int
	)
	for start := 0; start < len(tokens); start += g.batchSize {
		end := min(start+g.batchSize, len(tokens))
		batches++

		res, err := g.sendBatch(ctx, MulticastRequest{Tokens: tokens[start:end], Notification: n, Data: data})
		if err != nil {
			batchErr++
			lastErr = err
			total.FailureCount += end - start
			g.logger.Error("Push gateway batch failed",
				zap.String("url", RedactURL(g.url)),
				zap.Int("tokens", end-start),
				zap.Error(err),
			)
			continue
		}
		total.SuccessCount += res.SuccessCount
		total.FailureCount += res.FailureCount
	}

	if batches > 0 && batchErr == batches {
		return total, fmt.Errorf("%w: %w", types.ErrCollaboratorUnavailable, lastErr)
	}
	return total, nil
}

// sendBatch performs the HTTP POST for one batch with retry logic.
func (g *PushGateway) sendBatch(ctx context.Context, req MulticastRequest) (types.MulticastResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		gatewaySendTotal.WithLabelValues("error").Inc()
		return types.MulticastResult{}, fmt.Errorf("marshal multicast payload: %w", err)
	}

	var lastErr error
	for attempt := range maxRetries + 1 {
		if attempt > 0 {
			// Linear backoff: 1s, 2s.
			timer := time.NewTimer(time.Duration(attempt) * time.Second)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				gatewaySendTotal.WithLabelValues("error").Inc()
				return types.MulticastResult{}, fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			}
			gatewaySendTotal.WithLabelValues("retry").Inc()
		}

		if err := g.limiter.Wait(ctx); err != nil {
			gatewaySendTotal.WithLabelValues("error").Inc()
			return types.MulticastResult{}, fmt.Errorf("waiting for rate limiter: %w", err)
		}

		var res types.MulticastResult
		res, lastErr = g.doPost(ctx, body)
		if lastErr == nil {
			return res, nil
		}
		if !isRetryable(lastErr) {
			gatewaySendTotal.WithLabelValues("error").Inc()
			return types.MulticastResult{}, lastErr
		}

		g.logger.Debug("Push gateway transient failure, will retry",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	gatewaySendTotal.WithLabelValues("error").Inc()
	return types.MulticastResult{}, fmt.Errorf("push gateway send failed after %d attempts: %w", maxRetries+1, lastErr)
}

// doPost executes a single HTTP POST request and decodes the counts.
func (g *PushGateway) doPost(ctx context.Context, body []byte) (types.MulticastResult, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return types.MulticastResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if g.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.authToken)
	}

	resp, err := g.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		gatewaySendDuration.WithLabelValues("error").Observe(duration)
		return types.MulticastResult{}, &gatewayError{err: err, retryable: true}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gatewaySendDuration.WithLabelValues("error").Observe(duration)
		return types.MulticastResult{}, &gatewayError{
			err:       fmt.Errorf("push gateway returned HTTP %d", resp.StatusCode),
			retryable: resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	var res types.MulticastResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		gatewaySendDuration.WithLabelValues("error").Observe(duration)
		return types.MulticastResult{}, &gatewayError{err: fmt.Errorf("decode gateway response: %w", err)}
	}
	gatewaySendTotal.WithLabelValues("success").Inc()
	gatewaySendDuration.WithLabelValues("success").Observe(duration)
	return res, nil
}

// gatewayError wraps an error with a retryable flag.
type gatewayError struct {
	err       error
	retryable bool
}

func (e *gatewayError) Error() string { return e.err.Error() }
func (e *gatewayError) Unwrap() error { return e.err }

// isRetryable returns true if the error is a transient failure worth retrying.
func isRetryable(err error) bool {
	var ge *gatewayError
	if errors.As(err, &ge) {
		return ge.retryable
	}
	return true
}

// RedactURL masks credentials in a URL for safe logging.
// It redacts userinfo passwords and query parameter values.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			q.Set(key, "REDACTED")
		}
		u.RawQuery = q.Encode()
	}
	return u.Redacted()
}

// LogTransport is a development PushTransport that only logs each send and
// reports every token as delivered.
type LogTransport struct {
	logger *zap.Logger
}

// NewLogTransport creates a LogTransport.
func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger.Named("log-transport")}
}

// SendMulticast implements types.PushTransport.
func (t *LogTransport) SendMulticast(_ context.Context, tokens []types.DeviceToken, n types.Notification, data map[string]string) (types.MulticastResult, error) {
	t.logger.Info("Push notification",
		zap.Int("tokens", len(tokens)),
		zap.String("title", n.Title),
		zap.String("body", n.Body),
		zap.Any("data", data),
	)
	return types.MulticastResult{SuccessCount: len(tokens)}, nil
}
