package jobs

import (
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRefresher(t *testing.T, hour, minute int) *ScheduleRefresher {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScheduleRefresher(nil, &RefresherConfig{Hour: hour, Minute: minute}, log)
}

func TestRefresherNextRunToday(t *testing.T) {
	job := newTestRefresher(t, 5, 0)

	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// Полночь по Москве: запуск сегодня в 05:00
	now := time.Date(2026, time.September, 2, 0, 30, 0, 0, moscow)
	next := job.NextRun(now)

	assert.Equal(t, 2, next.Day())
	assert.Equal(t, 5, next.Hour())
	assert.Equal(t, 0, next.Minute())
}

func TestRefresherNextRunTomorrow(t *testing.T) {
	job := newTestRefresher(t, 5, 0)

	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// Время запуска уже прошло: ждём завтрашнего
	now := time.Date(2026, time.September, 2, 12, 0, 0, 0, moscow)
	next := job.NextRun(now)

	assert.Equal(t, 3, next.Day())
	assert.Equal(t, 5, next.Hour())
}

func TestRefresherNextRunExactMoment(t *testing.T) {
	job := newTestRefresher(t, 5, 30)

	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// Ровно в момент запуска следующий запуск назначается на завтра
	now := time.Date(2026, time.September, 2, 5, 30, 0, 0, moscow)
	next := job.NextRun(now)

	assert.Equal(t, 3, next.Day())
	assert.Equal(t, 5, next.Hour())
	assert.Equal(t, 30, next.Minute())
}

func TestRefresherName(t *testing.T) {
	job := newTestRefresher(t, 5, 0)
	assert.Equal(t, "schedule-refresher", job.Name())
}
