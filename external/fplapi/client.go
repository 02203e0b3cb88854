package fplapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/platform/resilience"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

const (
	defaultBaseURL        = "https://fantasy.premierleague.com/api"
	defaultTimeout        = 30 * time.Second
	defaultSummaryTimeout = 15 * time.Second
	summaryRetryPause     = time.Second

	// The official API rejects default Go client UAs.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration

	// SummaryMaxRetries bounds the element-summary retry loop; the
	// bootstrap fetch is never retried.
	SummaryTimeout    time.Duration
	SummaryMaxRetries int

	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the official Fantasy Premier League API with retry,
// circuit-breaker, and singleflight protection.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	timeout        time.Duration
	summaryTimeout time.Duration
	summaryRetries int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	summaryTimeout := cfg.SummaryTimeout
	if summaryTimeout <= 0 {
		summaryTimeout = defaultSummaryTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		summaryTimeout: summaryTimeout,
		summaryRetries: maxInt(cfg.SummaryMaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchPlayers pulls bootstrap-static and maps it into domain records.
func (c *Client) FetchPlayers(ctx context.Context) (usecase.PlayerBatch, error) {
	var payload bootstrapPayload
	if err := c.doJSON(ctx, "/bootstrap-static/", c.timeout, 0, &payload); err != nil {
		return usecase.PlayerBatch{}, fmt.Errorf("fetch bootstrap: %w", err)
	}

	batch, err := mapBootstrap(ctx, payload, c.logger)
	if err != nil {
		return usecase.PlayerBatch{}, err
	}
	batch.FetchedAt = time.Now().UTC()
	return batch, nil
}

// FetchPlayerSummary pulls one player's element-summary with the
// shorter per-player timeout.
func (c *Client) FetchPlayerSummary(ctx context.Context, playerID int) (usecase.PlayerSummary, error) {
	if playerID <= 0 {
		return usecase.PlayerSummary{}, fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/element-summary/%d/", playerID)
	var payload elementSummaryPayload
	if err := c.doJSON(ctx, path, c.summaryTimeout, c.summaryRetries, &payload); err != nil {
		return usecase.PlayerSummary{}, fmt.Errorf("fetch element summary id=%d: %w", playerID, err)
	}

	out := usecase.PlayerSummary{PlayerID: playerID}
	for _, row := range payload.HistoryPast {
		out.PastSeasons = append(out.PastSeasons, usecase.PastSeason{
			SeasonName:  row.SeasonName,
			TotalPoints: row.TotalPoints,
			Minutes:     row.Minutes,
			Goals:       row.GoalsScored,
			Assists:     row.Assists,
			CleanSheets: row.CleanSheets,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, timeout time.Duration, retries int, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, timeout, retries)
		if c.circuitEnabled {
			if reqErr != nil && isFPLCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if stderrors.Is(err, errFPLTransient) {
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", usecase.ErrMalformedPayload, err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, timeout time.Duration, retries int) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		raw, err := c.attempt(ctx, fullURL, timeout)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !stderrors.Is(err, errFPLTransient) {
			return nil, err
		}
		if attempt == retries {
			break
		}

		timer := time.NewTimer(summaryRetryPause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, fullURL string, timeout time.Duration) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request: %v", errFPLTransient, err)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	if isRetryableStatus(resp.StatusCode) {
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
	}
	// Non-retryable statuses still count as upstream unavailability, but
	// burning the retry budget on them is pointless.
	return nil, fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrDependencyUnavailable, resp.StatusCode, abbreviateBody(raw))
}

func isFPLCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
