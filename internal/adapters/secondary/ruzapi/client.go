package ruzapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

const (
	searchPath   = "/api/search"
	schedulePath = "/api/schedule/group/%d"

	// requestDateLayout формат дат в query-параметрах РУЗ
	requestDateLayout = "2006.01.02"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с API РУЗ
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для работы с РУЗ
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Log: log,
	}
}

// SearchGroup ищет группы по имени. Пустой список — не ошибка.
func (c *Client) SearchGroup(ctx context.Context, term string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("type", "group")
	requestURL := c.cfg.BaseURL + searchPath + "?" + query.Encode()

	var results []SearchResult
	if err := c.getJSON(ctx, requestURL, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ScheduleRange возвращает сырые пары группы за диапазон дат включительно
func (c *Client) ScheduleRange(ctx context.Context, groupID int64, start, end time.Time) ([]RawLesson, error) {
	query := url.Values{}
	query.Set("start", start.Format(requestDateLayout))
	query.Set("finish", end.Format(requestDateLayout))
	query.Set("lng", "1")
	requestURL := c.cfg.BaseURL + fmt.Sprintf(schedulePath, groupID) + "?" + query.Encode()

	var lessons []RawLesson
	if err := c.getJSON(ctx, requestURL, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// getJSON выполняет GET с ретраями и декодирует JSON-ответ.
// 429 и 5xx ретраятся с экспоненциальным бэкоффом, для 429 уважается Retry-After.
func (c *Client) getJSON(ctx context.Context, requestURL string, dest interface{}) error {
	maxAttempts := c.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	baseDelay := c.cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	var lastStatus int
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, err := c.doRequest(ctx, requestURL, dest)
		if err == nil {
			return nil
		}
		lastStatus = status
		lastErr = err

		retryable := status == http.StatusTooManyRequests || status >= 500 || status == 0
		if !retryable || attempt == maxAttempts {
			break
		}

		wait := baseDelay << (attempt - 1)
		if status == http.StatusTooManyRequests {
			if serverWait, ok := retryAfter(err); ok {
				wait = serverWait
			}
		}

		c.Log.Warn("ruz request failed, retrying",
			"url", requestURL,
			"attempt", attempt,
			"status", status,
			"wait", wait,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return &domain.FetchError{
		URL:        requestURL,
		StatusCode: lastStatus,
		Attempts:   maxAttempts,
		Err:        lastErr,
	}
}

// httpError ошибка одного запроса, хранит Retry-After при наличии
type httpError struct {
	status     int
	body       string
	retryAfter time.Duration
	hasRetry   bool
}

func (e *httpError) Error() string {
	return fmt.Sprintf("ruz API error [status=%d]: %s", e.status, truncateString(e.body, 200))
}

func retryAfter(err error) (time.Duration, bool) {
	if httpErr, ok := err.(*httpError); ok && httpErr.hasRetry {
		return httpErr.retryAfter, true
	}
	return 0, false
}

// doRequest выполняет один запрос, возвращает HTTP статус (0 для сетевых ошибок)
func (c *Client) doRequest(ctx context.Context, requestURL string, dest interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Log.Debug("ruz API returned non-200 status",
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)

		httpErr := &httpError{status: resp.StatusCode, body: string(body)}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, parseErr := strconv.Atoi(ra); parseErr == nil {
				httpErr.retryAfter = time.Duration(secs) * time.Second
				httpErr.hasRetry = true
			}
		}
		return resp.StatusCode, httpErr
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.Log.Debug("failed to unmarshal ruz API response",
			"error", err,
			"body_preview", truncateString(string(body), 200),
		)
		return resp.StatusCode, fmt.Errorf("ruz API unmarshal failed: %w", err)
	}

	return resp.StatusCode, nil
}
