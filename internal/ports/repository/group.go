package repository

import (
	"context"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// IGroupRepo справочник групп
type IGroupRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	// Ensure создаёт группу, если её ещё нет
	Ensure(ctx context.Context, group *domain.Group) error
}
