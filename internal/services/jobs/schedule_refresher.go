package jobs

import (
	"context"
	"log/slog"
	"time"

	scheduleUsecase "github.com/admin/tg-bots/ruz-bot/internal/usecases/schedule"
)

const refresherName = "schedule-refresher"

// RefresherConfig настройки ежедневного обновления расписаний
type RefresherConfig struct {
	// Hour и Minute время суток запуска свипа (по Москве)
	Hour   int `envconfig:"HOUR" default:"5"`
	Minute int `envconfig:"MINUTE" default:"0"`

	MaxConcurrentFetches int           `envconfig:"MAX_CONCURRENT_FETCHES" default:"5"`
	PacingDelay          time.Duration `envconfig:"PACING_DELAY" default:"20s"`
	AbandonThreshold     int           `envconfig:"ABANDON_THRESHOLD" default:"3"`
	// Cooldown минимальный интервал между обновлениями одной группы
	Cooldown time.Duration `envconfig:"COOLDOWN" default:"1h"`
}

// ScheduleRefresher джоба ежедневного обновления кэша расписаний.
// Выбран вариант с фиксированным временем суток, а не интервалом:
// интервал дрейфует и даёт дубли запусков после рестартов.
type ScheduleRefresher struct {
	scheduleService *scheduleUsecase.Service
	cfg             *RefresherConfig
	log             *slog.Logger
	location        *time.Location
}

// NewScheduleRefresher создаёт новую джобу обновления расписаний
func NewScheduleRefresher(scheduleService *scheduleUsecase.Service, cfg *RefresherConfig, log *slog.Logger) *ScheduleRefresher {
	location, _ := time.LoadLocation("Europe/Moscow")
	if location == nil {
		location = time.UTC
	}

	if cfg == nil {
		cfg = &RefresherConfig{Hour: 5}
	}

	return &ScheduleRefresher{
		scheduleService: scheduleService,
		cfg:             cfg,
		log:             log,
		location:        location,
	}
}

func (j *ScheduleRefresher) Name() string {
	return refresherName
}

// NextRun вычисляет следующее время запуска: сегодня в HH:MM,
// либо завтра, если это время уже прошло
func (j *ScheduleRefresher) NextRun(now time.Time) time.Time {
	nowLocal := now.In(j.location)

	next := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), j.cfg.Hour, j.cfg.Minute, 0, 0, j.location)
	if next.Before(nowLocal) || next.Equal(nowLocal) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run выполняет один свип по всем группам
func (j *ScheduleRefresher) Run(ctx context.Context) error {
	return j.scheduleService.Sweep(ctx, &scheduleUsecase.SweepOptions{
		MaxConcurrentFetches: j.cfg.MaxConcurrentFetches,
		PacingDelay:          j.cfg.PacingDelay,
		AbandonThreshold:     j.cfg.AbandonThreshold,
	})
}
