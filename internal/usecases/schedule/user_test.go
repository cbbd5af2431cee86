package schedule

import (
	"context"
	"testing"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGroupCreatesGroupAndUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SetGroup(ctx, 1, 10, "ИС221"))

	groups := svc.GroupRepo.(*fakeGroupRepo)
	require.Contains(t, groups.groups, int64(10))
	assert.Equal(t, "ИС221", groups.groups[10].Name)

	user, err := svc.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.GroupID)
	assert.False(t, user.HasSubgroup())
}

func TestSetGroupResetsSubgroup(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SetGroup(ctx, 1, 10, "ИС221"))
	require.NoError(t, svc.SetSubgroup(ctx, 1, 2))

	user, err := svc.Profile(ctx, 1)
	require.NoError(t, err)
	require.True(t, user.HasSubgroup())

	// Смена группы сбрасывает выбранную подгруппу
	require.NoError(t, svc.SetGroup(ctx, 1, 20, "ИС222"))

	user, err = svc.Profile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), user.GroupID)
	assert.False(t, user.HasSubgroup())
	assert.Equal(t, 0, user.SubgroupOrZero())
}

func TestSetSubgroupUnknownUser(t *testing.T) {
	svc := newTestService()

	err := svc.SetSubgroup(context.Background(), 42, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
