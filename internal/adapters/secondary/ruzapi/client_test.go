package ruzapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	cfg := &Config{
		BaseURL:        baseURL,
		Timeout:        5 * time.Second,
		MaxAttempts:    3,
		RetryBaseDelay: time.Millisecond,
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearchGroup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "ИС221", r.URL.Query().Get("term"))
		assert.Equal(t, "group", r.URL.Query().Get("type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 10, "label": "ИС221"}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	results, err := client.SearchGroup(context.Background(), "ИС221")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(10), results[0].ID)
	assert.Equal(t, "ИС221", results[0].Label)
}

func TestScheduleRangeQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/schedule/group/10", r.URL.Path)
		// Даты в параметрах с точками, не с дефисами
		assert.Equal(t, "2026.08.31", r.URL.Query().Get("start"))
		assert.Equal(t, "2026.09.05", r.URL.Query().Get("finish"))
		assert.Equal(t, "1", r.URL.Query().Get("lng"))

		_, _ = w.Write([]byte(`[{"date": "2026-09-02", "beginLesson": "09:00", "endLesson": "10:30", "discipline": "Аэродинамика", "listSubGroups": [{"subgroup": "ИС221/1"}]}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	start := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	lessons, err := client.ScheduleRange(context.Background(), 10, start, end)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "2026-09-02", lessons[0].Date)
	assert.Equal(t, "09:00", lessons[0].BeginLesson)
	require.Len(t, lessons[0].ListSubGroups, 1)
	assert.Equal(t, "ИС221/1", lessons[0].ListSubGroups[0].Subgroup)
}

func TestRetryOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.SearchGroup(context.Background(), "ИС221")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryHonorsRetryAfter(t *testing.T) {
	var calls int
	var firstRetryAt time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		if firstRetryAt.IsZero() {
			firstRetryAt = time.Now()
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	started := time.Now()
	client := newTestClient(srv.URL)

	_, err := client.SearchGroup(context.Background(), "ИС221")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, firstRetryAt.Sub(started), time.Second)
}

func TestRetriesExhausted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.SearchGroup(context.Background(), "ИС221")
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	require.True(t, domain.IsFetchError(err))

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, 3, fetchErr.Attempts)
}

func TestNoRetryOnNotFound(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.SearchGroup(context.Background(), "ИС221")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx кроме 429 не ретраится")
}

func TestRetryCancelledByContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := &Config{
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		MaxAttempts:    5,
		RetryBaseDelay: time.Minute,
	}
	client := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.SearchGroup(ctx, "ИС221")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
