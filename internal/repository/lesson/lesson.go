package lessonRepo

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/ruz-bot/internal/ports/repository"
)

type lessonColumns struct {
	TableName    string
	ID           string
	GroupID      string
	Date         string
	Subgroup     string
	BeginTime    string
	EndTime      string
	Discipline   string
	KindOfWork   string
	Auditorium   string
	Lecturer     string
	LecturerRank string
	UpdateTime   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns lessonColumns
}

// New создаёт новый репозиторий для работы с расписанием
func New(db persistence.Persistence, log *slog.Logger) ports.ILessonRepo {
	cols := lessonColumns{
		TableName:    "lessons",
		ID:           "id",
		GroupID:      "group_id",
		Date:         "date",
		Subgroup:     "subgroup",
		BeginTime:    "begin_time",
		EndTime:      "end_time",
		Discipline:   "discipline",
		KindOfWork:   "kind_of_work",
		Auditorium:   "auditorium",
		Lecturer:     "lecturer",
		LecturerRank: "lecturer_rank",
		UpdateTime:   "update_time",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// insertColumns возвращает строку с колонками вставки (без id, 11 колонок)
func (r *Repository) insertColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.GroupID,
		r.columns.Date,
		r.columns.Subgroup,
		r.columns.BeginTime,
		r.columns.EndTime,
		r.columns.Discipline,
		r.columns.KindOfWork,
		r.columns.Auditorium,
		r.columns.Lecturer,
		r.columns.LecturerRank,
		r.columns.UpdateTime)
}

// ReplaceGroupSchedule атомарно заменяет расписание группы новым набором пар.
// Пустой набор — no-op: апстрим мог вернуть пустой ответ при сбое,
// и принимать его за "пар нет" с удалением рабочего кэша нельзя.
func (r *Repository) ReplaceGroupSchedule(ctx context.Context, groupID int64, lessons []domain.Lesson) error {
	if len(lessons) == 0 {
		r.Log.Debug("no lessons to save, keeping existing schedule", "group_id", groupID)
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s) VALUES
		(:group_id, :date, :subgroup, :begin_time, :end_time, :discipline, :kind_of_work, :auditorium, :lecturer, :lecturer_rank, :update_time)`,
		r.columns.TableName,
		r.insertColumns())
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.GroupID)

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		if err := tx.Exec(ctx, deleteQuery, groupID); err != nil {
			return fmt.Errorf("failed to delete old lessons: %w", err)
		}
		if err := tx.NamedExec(ctx, insertQuery, lessons); err != nil {
			return fmt.Errorf("failed to insert lessons: %w", err)
		}
		return nil
	})
	if err != nil {
		r.Log.Error("failed to replace group schedule",
			"error", err,
			"group_id", groupID,
			"lessons_count", len(lessons))
		return fmt.Errorf("failed to replace group schedule: %w", err)
	}

	r.Log.Debug("group schedule replaced",
		"group_id", groupID,
		"lessons_count", len(lessons))
	return nil
}

// DeleteGroupSchedule удаляет все пары группы
func (r *Repository) DeleteGroupSchedule(ctx context.Context, groupID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.GroupID)
	deleted, err := r.db.ExecWithResult(ctx, query, groupID)
	if err != nil {
		r.Log.Error("failed to delete group schedule", "error", err, "group_id", groupID)
		return fmt.Errorf("failed to delete group schedule: %w", err)
	}
	r.Log.Debug("group schedule deleted", "group_id", groupID, "lessons_deleted", deleted)
	return nil
}

// HasLessons true, если у группы есть хотя бы одна закэшированная пара
func (r *Repository) HasLessons(ctx context.Context, groupID int64) (bool, error) {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		r.columns.TableName,
		r.columns.GroupID)
	if err := r.db.Get(ctx, &exists, query, groupID); err != nil {
		r.Log.Error("failed to check group lessons", "error", err, "group_id", groupID)
		return false, fmt.Errorf("failed to check group lessons: %w", err)
	}
	return exists, nil
}

// LastRefreshTime максимальный update_time среди пар группы.
// Нулевой Unix-момент, если пар нет — такая группа бесконечно протухшая.
func (r *Repository) LastRefreshTime(ctx context.Context, groupID int64) (time.Time, error) {
	var latest time.Time
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), to_timestamp(0)) FROM %s WHERE %s = $1`,
		r.columns.UpdateTime,
		r.columns.TableName,
		r.columns.GroupID)
	if err := r.db.Get(ctx, &latest, query, groupID); err != nil {
		r.Log.Error("failed to get last refresh time", "error", err, "group_id", groupID)
		return time.Time{}, fmt.Errorf("failed to get last refresh time: %w", err)
	}
	return latest, nil
}

// QueryRange пары группы в диапазоне дат включительно для подгруппы.
// Подгруппа 0 в строке пары означает "для всех", такие пары видны всем.
// Порядок: дата, затем время начала — апстрим порядок не гарантирует.
func (r *Repository) QueryRange(ctx context.Context, groupID int64, start, end time.Time, subgroup int) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	query := fmt.Sprintf(`SELECT * FROM %s
		WHERE %s = $1 AND %s BETWEEN $2 AND $3 AND (%s = $4 OR %s = 0)
		ORDER BY %s ASC, %s ASC`,
		r.columns.TableName,
		r.columns.GroupID,
		r.columns.Date,
		r.columns.Subgroup,
		r.columns.Subgroup,
		r.columns.Date,
		r.columns.BeginTime)
	if err := r.db.Select(ctx, &lessons, query, groupID, start, end, subgroup); err != nil {
		r.Log.Error("failed to query lessons range",
			"error", err,
			"group_id", groupID,
			"start", start,
			"end", end,
			"subgroup", subgroup)
		return nil, fmt.Errorf("failed to query lessons range: %w", err)
	}
	r.Log.Debug("lessons range queried",
		"group_id", groupID,
		"lessons_count", len(lessons))
	return lessons, nil
}
