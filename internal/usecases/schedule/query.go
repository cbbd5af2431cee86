package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/admin/tg-bots/ruz-bot/internal/pkg/dates"
)

// Day расписание пользователя на один день.
// При попадании в кэш-окно читает из хранилища, иначе делает живой запрос
// к РУЗ. Живой результат в кэш не пишется: свип сам держит окно свежим,
// а разовые запросы за его пределы кэшировать незачем.
func (s *Service) Day(ctx context.Context, userID int64, date time.Time) ([]domain.Lesson, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subgroup := user.SubgroupOrZero()

	cached, err := s.IsDayCached(ctx, user.GroupID, date)
	if err != nil {
		return nil, err
	}

	if cached {
		return s.LessonRepo.QueryRange(ctx, user.GroupID, dates.StartOfDay(date), dates.EndOfDay(date), subgroup)
	}

	s.Log.Info("day not cached, fetching live",
		"user_id", userID,
		"group_id", user.GroupID,
		"date", date.Format("2006-01-02"))

	lessons, err := s.RuzAPI.FetchDay(ctx, user.GroupID, date)
	if err != nil {
		return nil, fmt.Errorf("live day fetch failed: %w", err)
	}
	return filterSubgroup(lessons, subgroup), nil
}

// Week расписание пользователя на учебную неделю вместе с временем
// последнего обновления кэша группы
func (s *Service) Week(ctx context.Context, userID int64, date time.Time) ([]domain.Lesson, time.Time, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, time.Time{}, err
	}

	subgroup := user.SubgroupOrZero()
	start, end := dates.WeekBounds(date)

	cached, err := s.IsWeekCached(ctx, user.GroupID, date)
	if err != nil {
		return nil, time.Time{}, err
	}

	if cached {
		lessons, err := s.LessonRepo.QueryRange(ctx, user.GroupID, start, end, subgroup)
		if err != nil {
			return nil, time.Time{}, err
		}
		lastUpdate, err := s.LessonRepo.LastRefreshTime(ctx, user.GroupID)
		if err != nil {
			return nil, time.Time{}, err
		}
		return lessons, lastUpdate, nil
	}

	s.Log.Info("week not cached, fetching live",
		"user_id", userID,
		"group_id", user.GroupID,
		"week_start", start.Format("2006-01-02"))

	lessons, err := s.RuzAPI.FetchWeek(ctx, user.GroupID, date)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("live week fetch failed: %w", err)
	}
	return filterSubgroup(lessons, subgroup), s.now(), nil
}

// filterSubgroup оставляет пары для всей группы и для указанной подгруппы
func filterSubgroup(lessons []domain.Lesson, subgroup int) []domain.Lesson {
	filtered := make([]domain.Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.ForSubgroup(subgroup) {
			filtered = append(filtered, lesson)
		}
	}
	return filtered
}
