package userRepo

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

type userColumns struct {
	TableName string
	ID        string
	GroupID   string
	GroupName string
	Subgroup  string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с пользователями
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName: "users",
		ID:        "id",
		GroupID:   "group_id",
		GroupName: "group_name",
		Subgroup:  "sub_group",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (4 колонки)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s",
		r.columns.ID,
		r.columns.GroupID,
		r.columns.GroupName,
		r.columns.Subgroup)
}

// GetByID получает пользователя по Telegram ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("user not found", "user_id", id)
			return nil, domain.ErrUserNotFound
		}
		r.Log.Error("failed to get user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Upsert создаёт пользователя или обновляет его группу и подгруппу
func (r *Repository) Upsert(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET %s = $2, %s = $3, %s = $4`,
		r.columns.TableName,
		r.allColumns(),
		r.columns.ID,
		r.columns.GroupID,
		r.columns.GroupName,
		r.columns.Subgroup)
	err := r.db.Exec(ctx, query, user.ID, user.GroupID, user.GroupName, user.Subgroup)
	if err != nil {
		r.Log.Error("failed to upsert user",
			"error", err,
			"user_id", user.ID,
			"group_id", user.GroupID)
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	r.Log.Debug("user upserted", "user_id", user.ID, "group_id", user.GroupID)
	return nil
}

// UpdateSubgroup обновляет только подгруппу пользователя
func (r *Repository) UpdateSubgroup(ctx context.Context, id int64, subgroup int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		r.columns.TableName,
		r.columns.Subgroup,
		r.columns.ID)
	rowsAffected, err := r.db.ExecWithResult(ctx, query, id, subgroup)
	if err != nil {
		r.Log.Error("failed to update user subgroup", "error", err, "user_id", id)
		return fmt.Errorf("failed to update user subgroup: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for subgroup update", "user_id", id)
		return domain.ErrUserNotFound
	}
	r.Log.Debug("user subgroup updated", "user_id", id, "subgroup", subgroup)
	return nil
}

// CountByGroup количество пользователей с указанной группой
func (r *Repository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.GroupID)
	if err := r.db.Get(ctx, &count, query, groupID); err != nil {
		r.Log.Error("failed to count users by group", "error", err, "group_id", groupID)
		return 0, fmt.Errorf("failed to count users by group: %w", err)
	}
	return count, nil
}

// GroupIDs уникальные group_id всех пользователей
func (r *Repository) GroupIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s ORDER BY %s`,
		r.columns.GroupID,
		r.columns.TableName,
		r.columns.GroupID)
	if err := r.db.Select(ctx, &ids, query); err != nil {
		r.Log.Error("failed to list group ids", "error", err)
		return nil, fmt.Errorf("failed to list group ids: %w", err)
	}
	return ids, nil
}
