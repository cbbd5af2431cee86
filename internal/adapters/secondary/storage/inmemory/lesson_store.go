package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/repository"
)

// LessonStore in-memory реализация хранилища расписаний.
// Используется в тестах и при запуске без Postgres.
type LessonStore struct {
	mu      sync.RWMutex
	lessons map[int64][]domain.Lesson // group_id -> пары
}

// NewLessonStore создаёт новое in-memory хранилище расписаний
func NewLessonStore() repository.ILessonRepo {
	return &LessonStore{
		lessons: make(map[int64][]domain.Lesson),
	}
}

// ReplaceGroupSchedule заменяет расписание группы, пустой набор игнорируется
func (s *LessonStore) ReplaceGroupSchedule(_ context.Context, groupID int64, lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	copied := make([]domain.Lesson, len(lessons))
	copy(copied, lessons)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons[groupID] = copied
	return nil
}

// DeleteGroupSchedule удаляет все пары группы
func (s *LessonStore) DeleteGroupSchedule(_ context.Context, groupID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lessons, groupID)
	return nil
}

// HasLessons true, если у группы есть хотя бы одна пара
func (s *LessonStore) HasLessons(_ context.Context, groupID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lessons[groupID]) > 0, nil
}

// LastRefreshTime максимальный update_time, нулевой Unix-момент если пар нет
func (s *LessonStore) LastRefreshTime(_ context.Context, groupID int64) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := time.Unix(0, 0).UTC()
	for _, lesson := range s.lessons[groupID] {
		if lesson.UpdateTime.After(latest) {
			latest = lesson.UpdateTime
		}
	}
	return latest, nil
}

// QueryRange пары в диапазоне дат для подгруппы, по дате и времени начала
func (s *LessonStore) QueryRange(_ context.Context, groupID int64, start, end time.Time, subgroup int) ([]domain.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Lesson
	for _, lesson := range s.lessons[groupID] {
		if lesson.Date.Before(start) || lesson.Date.After(end) {
			continue
		}
		if !lesson.ForSubgroup(subgroup) {
			continue
		}
		result = append(result, lesson)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].BeginTime < result[j].BeginTime
	})

	return result, nil
}
