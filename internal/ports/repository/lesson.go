package repository

import (
	"context"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// ILessonRepo хранилище закэшированного расписания группы
type ILessonRepo interface {
	// ReplaceGroupSchedule атомарно заменяет расписание группы новым набором пар.
	// Пустой набор игнорируется: неудачный фетч не должен стирать рабочий кэш.
	ReplaceGroupSchedule(ctx context.Context, groupID int64, lessons []domain.Lesson) error

	// DeleteGroupSchedule удаляет все пары группы
	DeleteGroupSchedule(ctx context.Context, groupID int64) error

	// HasLessons true, если у группы есть хотя бы одна закэшированная пара
	HasLessons(ctx context.Context, groupID int64) (bool, error)

	// LastRefreshTime максимальный update_time среди пар группы,
	// нулевой Unix-момент если пар нет
	LastRefreshTime(ctx context.Context, groupID int64) (time.Time, error)

	// QueryRange пары группы в диапазоне дат включительно, подгруппа 0 или указанная,
	// отсортированные по дате и времени начала
	QueryRange(ctx context.Context, groupID int64, start, end time.Time, subgroup int) ([]domain.Lesson, error)
}
