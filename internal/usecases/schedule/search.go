package schedule

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/admin/tg-bots/ruz-bot/internal/domain"
)

// searchCacheTTL справочник групп в апстриме меняется редко, сутки хватает
const searchCacheTTL = 24 * time.Hour

// SearchGroup ищет группу по имени, кэшируя ответ апстрима в Redis.
// Ошибки кэша не фатальны: при любой проблеме уходим в живой поиск.
func (s *Service) SearchGroup(ctx context.Context, name string) ([]domain.GroupMatch, error) {
	name = strings.TrimSpace(name)
	cacheKey := "ruz:search:" + strings.ToLower(name)

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey); err == nil {
			var matches []domain.GroupMatch
			if err := json.Unmarshal([]byte(raw), &matches); err == nil {
				s.Log.Debug("group search served from cache", "query", name)
				return matches, nil
			}
			s.Log.Warn("malformed search cache entry, refetching", "key", cacheKey)
		}
	}

	matches, err := s.RuzAPI.SearchGroup(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(matches); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, string(raw), searchCacheTTL); err != nil {
				s.Log.Warn("failed to cache search results", "error", err, "key", cacheKey)
			}
		}
	}

	return matches, nil
}
