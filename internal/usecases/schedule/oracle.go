package schedule

import (
	"context"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/pkg/dates"
)

// IsGroupCached true, если у группы есть хотя бы одна закэшированная пара
func (s *Service) IsGroupCached(ctx context.Context, groupID int64) (bool, error) {
	return s.LessonRepo.HasLessons(ctx, groupID)
}

// IsRangeCached решает, закрыт ли диапазон дат кэшем группы.
// Окно считается от текущего момента, а не от времени последнего обновления:
// запись "выезжает" из окна просто за счёт хода календаря, и тогда
// нужен живой запрос, даже если строки в базе физически не менялись.
func (s *Service) IsRangeCached(ctx context.Context, groupID int64, start, end time.Time) (bool, error) {
	cached, err := s.IsGroupCached(ctx, groupID)
	if err != nil {
		return false, err
	}
	if !cached {
		s.Log.Debug("group has no cached lessons", "group_id", groupID)
		return false, nil
	}

	windowStart, windowEnd := dates.MonthWindow(s.now())
	if start.Before(windowStart) || end.After(windowEnd) {
		s.Log.Debug("requested range is outside cache window",
			"group_id", groupID,
			"start", start,
			"end", end,
			"window_start", windowStart,
			"window_end", windowEnd)
		return false, nil
	}

	return true, nil
}

// IsDayCached закрыт ли кэшем один день
func (s *Service) IsDayCached(ctx context.Context, groupID int64, date time.Time) (bool, error) {
	return s.IsRangeCached(ctx, groupID, dates.StartOfDay(date), dates.EndOfDay(date))
}

// IsWeekCached закрыта ли кэшем учебная неделя (понедельник — суббота)
func (s *Service) IsWeekCached(ctx context.Context, groupID int64, date time.Time) (bool, error) {
	start, end := dates.WeekBounds(date)
	return s.IsRangeCached(ctx, groupID, start, end)
}
