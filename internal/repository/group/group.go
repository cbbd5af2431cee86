package groupRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/ruz-bot/internal/ports/repository"
)

type Repository struct {
	db  persistence.Persistence
	Log *slog.Logger
}

// New создаёт новый репозиторий для работы с группами
func New(db persistence.Persistence, log *slog.Logger) ports.IGroupRepo {
	return &Repository{
		db:  db,
		Log: log,
	}
}

// GetByID получает группу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	var group domain.Group
	err := r.db.Get(ctx, &group, `SELECT id, name FROM groups WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		r.Log.Error("failed to get group", "error", err, "group_id", id)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// Ensure создаёт группу, если её ещё нет. Имя существующей группы не меняется.
func (r *Repository) Ensure(ctx context.Context, group *domain.Group) error {
	query := `INSERT INTO groups (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	if err := r.db.Exec(ctx, query, group.ID, group.Name); err != nil {
		r.Log.Error("failed to ensure group", "error", err, "group_id", group.ID)
		return fmt.Errorf("failed to ensure group: %w", err)
	}
	return nil
}
