package schedule

import (
	"context"
	"fmt"
)

// RefreshGroup обновляет кэш группы месячным окном из РУЗ.
// Возвращает false без запроса, если группу обновляли недавно —
// кулдаун защищает апстрим от гонки свипа с принудительным обновлением.
func (s *Service) RefreshGroup(ctx context.Context, groupID int64) (bool, error) {
	lastRefresh, err := s.LessonRepo.LastRefreshTime(ctx, groupID)
	if err != nil {
		return false, err
	}

	if age := s.now().Sub(lastRefresh); age < s.RefreshCooldown {
		s.Log.Debug("group refreshed recently, skipping",
			"group_id", groupID,
			"age", age,
			"cooldown", s.RefreshCooldown)
		return false, nil
	}

	return true, s.ForceRefreshGroup(ctx, groupID)
}

// ForceRefreshGroup обновляет кэш группы без учёта кулдауна
func (s *Service) ForceRefreshGroup(ctx context.Context, groupID int64) error {
	lessons, err := s.RuzAPI.FetchMonth(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to fetch month schedule: %w", err)
	}

	if len(lessons) == 0 {
		// Пустой ответ не отличим от сбоя апстрима, кэш не трогаем
		s.Log.Warn("upstream returned no lessons, keeping cached schedule", "group_id", groupID)
		return nil
	}

	if err := s.LessonRepo.ReplaceGroupSchedule(ctx, groupID, lessons); err != nil {
		return err
	}

	s.Log.Info("group schedule refreshed",
		"group_id", groupID,
		"lessons_count", len(lessons))
	return nil
}

// PruneGroup удаляет кэш расписания группы, потерявшей аудиторию
func (s *Service) PruneGroup(ctx context.Context, groupID int64) error {
	if err := s.LessonRepo.DeleteGroupSchedule(ctx, groupID); err != nil {
		return err
	}
	s.Log.Info("abandoned group schedule pruned", "group_id", groupID)
	return nil
}
