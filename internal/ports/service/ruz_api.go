package service

import (
	"context"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// IRuzAPIService сервис получения расписания из апстрима РУЗ.
// Возвращает пары, уже нормализованные в domain.Lesson: с group_id,
// производной подгруппой и временем обновления.
type IRuzAPIService interface {
	SearchGroup(ctx context.Context, name string) ([]domain.GroupMatch, error)
	FetchRange(ctx context.Context, groupID int64, start, end time.Time) ([]domain.Lesson, error)
	FetchDay(ctx context.Context, groupID int64, date time.Time) ([]domain.Lesson, error)
	FetchWeek(ctx context.Context, groupID int64, date time.Time) ([]domain.Lesson, error)
	// FetchMonth месячное окно кэша: с начала прошлого месяца по конец следующего
	FetchMonth(ctx context.Context, groupID int64) ([]domain.Lesson, error)
}
