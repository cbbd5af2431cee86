package schedule

import (
	"context"
	"database/sql"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// SetGroup привязывает пользователя к группе. Группа создаётся при первом
// упоминании, подгруппа сбрасывается — в новой группе она другая.
func (s *Service) SetGroup(ctx context.Context, userID, groupID int64, groupName string) error {
	if err := s.GroupRepo.Ensure(ctx, &domain.Group{ID: groupID, Name: groupName}); err != nil {
		return err
	}

	user := &domain.User{
		ID:        userID,
		GroupID:   groupID,
		GroupName: groupName,
		Subgroup:  sql.NullInt64{},
	}
	if err := s.UserRepo.Upsert(ctx, user); err != nil {
		return err
	}

	s.Log.Info("user group set",
		"user_id", userID,
		"group_id", groupID,
		"group_name", groupName)
	return nil
}

// SetSubgroup сохраняет номер подгруппы пользователя
func (s *Service) SetSubgroup(ctx context.Context, userID int64, subgroup int) error {
	if err := s.UserRepo.UpdateSubgroup(ctx, userID, subgroup); err != nil {
		return err
	}
	s.Log.Info("user subgroup set", "user_id", userID, "subgroup", subgroup)
	return nil
}

// Profile профиль пользователя
func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.UserRepo.GetByID(ctx, userID)
}
