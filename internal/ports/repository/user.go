package repository

import (
	"context"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// IUserRepo хранилище профилей пользователей бота
type IUserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Upsert создаёт пользователя или обновляет его группу и подгруппу
	Upsert(ctx context.Context, user *domain.User) error
	UpdateSubgroup(ctx context.Context, id int64, subgroup int) error
	// CountByGroup количество пользователей с указанной группой
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	// GroupIDs уникальные group_id всех пользователей, порядок обхода свипа
	GroupIDs(ctx context.Context) ([]int64, error)
}
