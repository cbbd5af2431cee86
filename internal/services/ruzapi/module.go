package ruzapi

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	ruzapiAdapter "github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/ruzapi"
	"github.com/admin/tg-bots/ruz-bot/internal/domain"
	"github.com/admin/tg-bots/ruz-bot/internal/pkg/dates"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/service"
)

// lessonDateLayout формат поля date в ответе РУЗ
const lessonDateLayout = "2006-01-02"

// Client низкоуровневый клиент РУЗ
type Client interface {
	SearchGroup(ctx context.Context, term string) ([]ruzapiAdapter.SearchResult, error)
	ScheduleRange(ctx context.Context, groupID int64, start, end time.Time) ([]ruzapiAdapter.RawLesson, error)
}

// Service реализует IRuzAPIService поверх клиента РУЗ.
// Нормализует сырые записи апстрима в domain.Lesson на границе системы,
// чтобы дальше по коду нетипизированных структур не было.
type Service struct {
	client Client
	log    *slog.Logger
	now    func() time.Time
}

// New создаёт новый сервис для работы с РУЗ
func New(client Client, log *slog.Logger) service.IRuzAPIService {
	return &Service{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// SearchGroup ищет группу по имени, пустой результат — не ошибка
func (s *Service) SearchGroup(ctx context.Context, name string) ([]domain.GroupMatch, error) {
	results, err := s.client.SearchGroup(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search group: %w", err)
	}

	matches := make([]domain.GroupMatch, 0, len(results))
	for _, result := range results {
		matches = append(matches, domain.GroupMatch{
			ID:    result.ID,
			Label: result.Label,
		})
	}
	return matches, nil
}

// FetchRange получает пары группы за диапазон дат включительно
func (s *Service) FetchRange(ctx context.Context, groupID int64, start, end time.Time) ([]domain.Lesson, error) {
	raw, err := s.client.ScheduleRange(ctx, groupID, start, end)
	if err != nil {
		return nil, err
	}
	return s.decorate(groupID, raw), nil
}

// FetchDay пары группы за один день
func (s *Service) FetchDay(ctx context.Context, groupID int64, date time.Time) ([]domain.Lesson, error) {
	return s.FetchRange(ctx, groupID, date, date)
}

// FetchWeek пары группы за учебную неделю (понедельник — суббота)
func (s *Service) FetchWeek(ctx context.Context, groupID int64, date time.Time) ([]domain.Lesson, error) {
	start, end := dates.WeekBounds(date)
	return s.FetchRange(ctx, groupID, start, end)
}

// FetchMonth пары группы за кэш-окно:
// с первого дня прошлого месяца по последний день следующего
func (s *Service) FetchMonth(ctx context.Context, groupID int64) ([]domain.Lesson, error) {
	start, end := dates.MonthWindow(s.now())
	return s.FetchRange(ctx, groupID, start, end)
}

// decorate нормализует сырые записи: group_id, производная подгруппа, update_time.
// Записи с нечитаемой датой отбрасываются с предупреждением.
func (s *Service) decorate(groupID int64, raw []ruzapiAdapter.RawLesson) []domain.Lesson {
	updateTime := s.now()

	lessons := make([]domain.Lesson, 0, len(raw))
	for _, entry := range raw {
		date, err := time.Parse(lessonDateLayout, entry.Date)
		if err != nil {
			s.log.Warn("skipping lesson with malformed date",
				"group_id", groupID,
				"date", entry.Date,
				"discipline", entry.Discipline)
			continue
		}

		lessons = append(lessons, domain.Lesson{
			GroupID:      groupID,
			Date:         date,
			Subgroup:     deriveSubgroup(entry.ListSubGroups),
			BeginTime:    entry.BeginLesson,
			EndTime:      entry.EndLesson,
			Discipline:   entry.Discipline,
			KindOfWork:   entry.KindOfWork,
			Auditorium:   entry.Auditorium,
			Lecturer:     entry.LecturerTitle,
			LecturerRank: entry.LecturerRank,
			UpdateTime:   updateTime,
		})
	}
	return lessons
}

// deriveSubgroup номер подгруппы из первой ссылки listSubGroups.
// Пустой список — пара для всей группы (подгруппа 0).
// Номер — последний символ метки подгруппы ("ИС221/2" -> 2).
func deriveSubgroup(refs []ruzapiAdapter.SubGroupRef) int {
	if len(refs) == 0 {
		return domain.SubgroupAll
	}
	label := refs[0].Subgroup
	if label == "" {
		return domain.SubgroupAll
	}
	last := label[len(label)-1]
	if last < '0' || last > '9' {
		return domain.SubgroupAll
	}
	return int(last - '0')
}
