package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// List возвращает каталог целиком; список кешируется с коротким TTL,
// ошибки кеша деградируют в чтение из базы.
func (s *Service) List(ctx context.Context) ([]domain.Song, error) {
	const op = "catalog.list"

	if s.cache != nil {
		if b, err := s.cache.Get(ctx, domain.CacheKeySongList()); err == nil && len(b) > 0 {
			var songs []domain.Song
			if err := json.Unmarshal(b, &songs); err == nil {
				return songs, nil
			}
			s.log.Printf("%s: stale cache entry dropped", op)
			_ = s.cache.Del(ctx, domain.CacheKeySongList())
		}
	}

	songs, err := s.repo.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrDatabase, err)
	}

	if s.cache != nil {
		if b, err := json.Marshal(songs); err == nil {
			if err := s.cache.Set(ctx, domain.CacheKeySongList(), b, s.listTTL); err != nil {
				s.log.Printf("%s: cache set failed: %v", op, err)
			}
		}
	}
	return songs, nil
}

// ListObjects — сырой листинг бакета (операторская ручка)
func (s *Service) ListObjects(ctx context.Context) ([]domain.ObjectInfo, error) {
	const op = "catalog.list_objects"
	objects, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrObjectStore, err)
	}
	return objects, nil
}
