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

func TestRefreshGroupFetchesAndStores(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.lessons = []domain.Lesson{
		testLesson(10, frozenNow, "09:00", 0),
		testLesson(10, frozenNow.AddDate(0, 0, 1), "10:40", 1),
	}

	refreshed, err := svc.RefreshGroup(ctx, 10)
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, 1, upstream.fetchCalls)

	has, err := svc.LessonRepo.HasLessons(ctx, 10)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRefreshGroupCooldownSkip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.lessons = []domain.Lesson{testLesson(10, frozenNow, "09:00", 0)}

	refreshed, err := svc.RefreshGroup(ctx, 10)
	require.NoError(t, err)
	require.True(t, refreshed)

	// Повтор внутри кулдауна не трогает апстрим
	refreshed, err = svc.RefreshGroup(ctx, 10)
	require.NoError(t, err)
	assert.False(t, refreshed)
	assert.Equal(t, 1, upstream.fetchCalls)

	// После кулдауна обновление снова разрешено
	svc.now = func() time.Time { return frozenNow.Add(2 * time.Hour) }

	refreshed, err = svc.RefreshGroup(ctx, 10)
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, 2, upstream.fetchCalls)
}

func TestForceRefreshIgnoresCooldown(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.lessons = []domain.Lesson{testLesson(10, frozenNow, "09:00", 0)}

	require.NoError(t, svc.ForceRefreshGroup(ctx, 10))
	require.NoError(t, svc.ForceRefreshGroup(ctx, 10))
	assert.Equal(t, 2, upstream.fetchCalls)
}

func TestForceRefreshEmptyResponseKeepsCache(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.lessons = []domain.Lesson{testLesson(10, frozenNow, "09:00", 0)}
	require.NoError(t, svc.ForceRefreshGroup(ctx, 10))

	// Пустой ответ апстрима не должен стереть рабочий кэш
	upstream.lessons = nil
	require.NoError(t, svc.ForceRefreshGroup(ctx, 10))

	has, err := svc.LessonRepo.HasLessons(ctx, 10)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestForceRefreshUpstreamError(t *testing.T) {
	svc := newTestService()

	upstream := svc.RuzAPI.(*fakeRuzAPI)
	upstream.err = errors.New("ruz is down")

	err := svc.ForceRefreshGroup(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorContains(t, err, "ruz is down")
}

func TestPruneGroup(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.LessonRepo.ReplaceGroupSchedule(ctx, 10, []domain.Lesson{
		testLesson(10, frozenNow, "09:00", 0),
	}))

	require.NoError(t, svc.PruneGroup(ctx, 10))

	has, err := svc.LessonRepo.HasLessons(ctx, 10)
	require.NoError(t, err)
	assert.False(t, has)
}
