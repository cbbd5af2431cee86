package schedule

import (
	"time"

	"log/slog"

	"github.com/admin/tg-bots/ruz-bot/internal/ports/cache"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/repository"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/service"
)

// Service бизнес-логика расписания: решает, когда хватает кэша,
// а когда нужен живой запрос к РУЗ, и обновляет кэш по группам.
type Service struct {
	LessonRepo repository.ILessonRepo
	UserRepo   repository.IUserRepo
	GroupRepo  repository.IGroupRepo
	RuzAPI     service.IRuzAPIService
	Cache      cache.Cache
	Log        *slog.Logger

	// RefreshCooldown минимальный интервал между обновлениями одной группы
	RefreshCooldown time.Duration

	now func() time.Time
}

// New создаёт новый сервис расписания. Кэш (Redis) опционален.
func New(
	lessonRepo repository.ILessonRepo,
	userRepo repository.IUserRepo,
	groupRepo repository.IGroupRepo,
	ruzAPI service.IRuzAPIService,
	searchCache cache.Cache,
	log *slog.Logger,
) *Service {
	return &Service{
		LessonRepo:      lessonRepo,
		UserRepo:        userRepo,
		GroupRepo:       groupRepo,
		RuzAPI:          ruzAPI,
		Cache:           searchCache,
		Log:             log,
		RefreshCooldown: time.Hour,
		now:             time.Now,
	}
}
