package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepOptions() *SweepOptions {
	return &SweepOptions{
		MaxConcurrentFetches: 2,
		PacingDelay:          time.Millisecond,
		AbandonThreshold:     3,
	}
}

func TestSweepRefreshesActiveGroups(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	users := svc.UserRepo.(*fakeUserRepo)
	users.addUsers(100, 10, 5)

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.lessons = []domain.Lesson{testLesson(10, frozenNow, "09:00", 0)}

	require.NoError(t, svc.Sweep(ctx, sweepOptions()))

	assert.Equal(t, 1, upstream.fetchCalls)

	has, err := svc.LessonRepo.HasLessons(ctx, 10)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSweepPrunesAbandonedGroups(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	users := svc.UserRepo.(*fakeUserRepo)
	users.addUsers(100, 10, 3) // на пороге, считается брошенной
	users.addUsers(200, 20, 4) // живая группа

	require.NoError(t, svc.LessonRepo.ReplaceGroupSchedule(ctx, 10, []domain.Lesson{
		testLesson(10, frozenNow, "09:00", 0),
	}))

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.lessons = []domain.Lesson{testLesson(20, frozenNow, "09:00", 0)}

	require.NoError(t, svc.Sweep(ctx, sweepOptions()))

	// Брошенная группа вычищена без запроса к апстриму
	has, err := svc.LessonRepo.HasLessons(ctx, 10)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = svc.LessonRepo.HasLessons(ctx, 20)
	require.NoError(t, err)
	assert.True(t, has)

	assert.Equal(t, 1, upstream.fetchCalls)
}

func TestSweepIsolatesGroupFailures(t *testing.T) {
	// Ошибка апстрима по одной группе не валит весь свип
	svc := newTestService()
	ctx := context.Background()

	users := svc.UserRepo.(*fakeUserRepo)
	users.addUsers(100, 10, 5)
	users.addUsers(200, 20, 5)

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.err = errors.New("ruz is down")

	require.NoError(t, svc.Sweep(ctx, sweepOptions()))
	assert.Equal(t, 2, upstream.fetchCalls)
}

func TestSweepCountErrorIsolated(t *testing.T) {
	svc := newTestService()

	users := svc.UserRepo.(*fakeUserRepo)
	users.addUsers(100, 10, 5)
	users.countErr = errors.New("db is down")

	upstream := svc.RuzAPI.(*fakeRuzAPI)

	require.NoError(t, svc.Sweep(context.Background(), sweepOptions()))
	assert.Equal(t, 0, upstream.fetchCalls)
}

func TestSweepCancellation(t *testing.T) {
	svc := newTestService()

	users := svc.UserRepo.(*fakeUserRepo)
	users.addUsers(100, 10, 5)
	users.addUsers(200, 20, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Sweep(ctx, sweepOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweepNoGroups(t *testing.T) {
	svc := newTestService()

	require.NoError(t, svc.Sweep(context.Background(), sweepOptions()))
}

func TestSweepDefaultOptions(t *testing.T) {
	opts := (*SweepOptions)(nil).withDefaults()

	assert.Equal(t, defaultMaxConcurrentFetches, opts.MaxConcurrentFetches)
	assert.Equal(t, defaultPacingDelay, opts.PacingDelay)
	assert.Equal(t, defaultAbandonThreshold, opts.AbandonThreshold)

	partial := &SweepOptions{AbandonThreshold: 1}
	opts = partial.withDefaults()
	assert.Equal(t, 1, opts.AbandonThreshold)
	assert.Equal(t, defaultPacingDelay, opts.PacingDelay)
}
