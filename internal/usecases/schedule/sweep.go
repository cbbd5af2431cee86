package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxConcurrentFetches = 5
	defaultPacingDelay          = 20 * time.Second
	defaultAbandonThreshold     = 3
)

// SweepOptions параметры одного прохода по всем группам
type SweepOptions struct {
	// MaxConcurrentFetches верхняя граница одновременных запросов к РУЗ
	MaxConcurrentFetches int
	// PacingDelay пауза между запусками групп, бережёт апстрим от бёрста
	PacingDelay time.Duration
	// AbandonThreshold группа с таким числом пользователей и меньше
	// считается брошенной, её кэш удаляется вместо обновления
	AbandonThreshold int
}

func (o *SweepOptions) withDefaults() SweepOptions {
	opts := SweepOptions{
		MaxConcurrentFetches: defaultMaxConcurrentFetches,
		PacingDelay:          defaultPacingDelay,
		AbandonThreshold:     defaultAbandonThreshold,
	}
	if o == nil {
		return opts
	}
	if o.MaxConcurrentFetches > 0 {
		opts.MaxConcurrentFetches = o.MaxConcurrentFetches
	}
	if o.PacingDelay > 0 {
		opts.PacingDelay = o.PacingDelay
	}
	if o.AbandonThreshold > 0 {
		opts.AbandonThreshold = o.AbandonThreshold
	}
	return opts
}

// Sweep один проход обновления кэша по всем известным группам.
// Ошибка одной группы логируется и не прерывает проход: упавший свип
// молча остановил бы все будущие обновления. Наружу уходит только
// отмена контекста и невозможность получить список групп.
func (s *Service) Sweep(ctx context.Context, options *SweepOptions) error {
	opts := options.withDefaults()
	sweepID := uuid.New()

	groupIDs, err := s.UserRepo.GroupIDs(ctx)
	if err != nil {
		return err
	}

	s.Log.Info("schedule sweep started",
		"sweep_id", sweepID,
		"groups_count", len(groupIDs),
		"max_workers", opts.MaxConcurrentFetches)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrentFetches)

	for i, groupID := range groupIDs {
		if i > 0 {
			// Пауза между группами, чтобы не бёрстить апстрим
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case <-time.After(opts.PacingDelay):
			}
		}

		groupID := groupID
		g.Go(func() error {
			s.sweepGroup(gCtx, sweepID, groupID, opts.AbandonThreshold)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.Log.Info("schedule sweep completed", "sweep_id", sweepID)
	return ctx.Err()
}

// sweepGroup обрабатывает одну группу внутри свипа, ошибки изолирует
func (s *Service) sweepGroup(ctx context.Context, sweepID uuid.UUID, groupID int64, abandonThreshold int) {
	userCount, err := s.UserRepo.CountByGroup(ctx, groupID)
	if err != nil {
		s.Log.Error("sweep: failed to count group users",
			"sweep_id", sweepID,
			"group_id", groupID,
			"error", err)
		return
	}

	if userCount <= abandonThreshold {
		s.Log.Info("sweep: group is abandoned, pruning",
			"sweep_id", sweepID,
			"group_id", groupID,
			"user_count", userCount)
		if err := s.PruneGroup(ctx, groupID); err != nil {
			s.Log.Error("sweep: failed to prune group",
				"sweep_id", sweepID,
				"group_id", groupID,
				"error", err)
		}
		return
	}

	refreshed, err := s.RefreshGroup(ctx, groupID)
	if err != nil {
		s.Log.Error("sweep: failed to refresh group",
			"sweep_id", sweepID,
			"group_id", groupID,
			"error", err)
		return
	}
	if !refreshed {
		s.Log.Debug("sweep: group skipped by cooldown",
			"sweep_id", sweepID,
			"group_id", groupID)
	}
}
