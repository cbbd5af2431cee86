package schedule

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"log/slog"

	"github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// frozenNow детерминированный момент "сейчас" для тестов
var frozenNow = time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService() *Service {
	svc := New(
		inmemory.NewLessonStore(),
		&fakeUserRepo{users: map[int64]*domain.User{}},
		&fakeGroupRepo{groups: map[int64]*domain.Group{}},
		&fakeRuzAPI{},
		nil,
		testLogger(),
	)
	svc.now = func() time.Time { return frozenNow }
	return svc
}

func testLesson(groupID int64, date time.Time, begin string, subgroup int) domain.Lesson {
	return domain.Lesson{
		GroupID:    groupID,
		Date:       date,
		Subgroup:   subgroup,
		BeginTime:  begin,
		EndTime:    "10:30",
		Discipline: "Аэродинамика",
		UpdateTime: frozenNow,
	}
}

func testUser(id, groupID int64) *domain.User {
	return &domain.User{ID: id, GroupID: groupID, GroupName: "ИС221"}
}

// fakeUserRepo реализация IUserRepo на карте
type fakeUserRepo struct {
	users    map[int64]*domain.User
	countErr error
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateSubgroup(_ context.Context, id int64, subgroup int) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Subgroup = sql.NullInt64{Int64: int64(subgroup), Valid: true}
	return nil
}

func (r *fakeUserRepo) CountByGroup(_ context.Context, groupID int64) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	count := 0
	for _, user := range r.users {
		if user.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) GroupIDs(_ context.Context) ([]int64, error) {
	seen := map[int64]bool{}
	var ids []int64
	for _, user := range r.users {
		if !seen[user.GroupID] {
			seen[user.GroupID] = true
			ids = append(ids, user.GroupID)
		}
	}
	return ids, nil
}

// addUsers добавляет n пользователей в группу, id начинаются с base
func (r *fakeUserRepo) addUsers(base, groupID int64, n int) {
	for i := int64(0); i < int64(n); i++ {
		r.users[base+i] = testUser(base+i, groupID)
	}
}

// fakeGroupRepo реализация IGroupRepo на карте
type fakeGroupRepo struct {
	groups map[int64]*domain.Group
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}

func (r *fakeGroupRepo) Ensure(_ context.Context, group *domain.Group) error {
	if _, ok := r.groups[group.ID]; !ok {
		copied := *group
		r.groups[group.ID] = &copied
	}
	return nil
}

// fakeRuzAPI управляемая реализация IRuzAPIService
type fakeRuzAPI struct {
	matches []domain.GroupMatch
	lessons []domain.Lesson
	err     error

	searchCalls int
	fetchCalls  int
}

func (f *fakeRuzAPI) SearchGroup(_ context.Context, _ string) ([]domain.GroupMatch, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func (f *fakeRuzAPI) FetchRange(_ context.Context, _ int64, _, _ time.Time) ([]domain.Lesson, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lessons, nil
}

func (f *fakeRuzAPI) FetchDay(ctx context.Context, groupID int64, date time.Time) ([]domain.Lesson, error) {
	return f.FetchRange(ctx, groupID, date, date)
}

func (f *fakeRuzAPI) FetchWeek(ctx context.Context, groupID int64, date time.Time) ([]domain.Lesson, error) {
	return f.FetchRange(ctx, groupID, date, date)
}

func (f *fakeRuzAPI) FetchMonth(ctx context.Context, groupID int64) ([]domain.Lesson, error) {
	return f.FetchRange(ctx, groupID, frozenNow, frozenNow)
}

var errCacheMiss = errors.New("cache miss")

// fakeCache реализация Cache на карте
type fakeCache struct {
	values map[string]string
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	value, ok := c.values[key]
	if !ok {
		return "", errCacheMiss
	}
	return value, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func (c *fakeCache) Close() error { return nil }
