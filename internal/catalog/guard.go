package catalog

import (
	"context"
	"fmt"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// Guard-проверки до мутаций. Это не блокировки: между проверкой и
// координированной операцией остаётся узкое окно гонки, настоящая
// точка принуждения уникальности — constraint в каталоге.

func (s *Service) guardFilenameFree(ctx context.Context, filename string) error {
	_, exists, err := s.repo.SongByName(ctx, filename)
	if err != nil {
		return fmt.Errorf("check filename %q: %w: %w", filename, domain.ErrDatabase, err)
	}
	if exists {
		return fmt.Errorf("filename %q: %w", filename, domain.ErrConflict)
	}
	return nil
}

func (s *Service) guardSongExists(ctx context.Context, id domain.SongID) (domain.Song, error) {
	song, exists, err := s.repo.SongByID(ctx, id)
	if err != nil {
		return domain.Song{}, fmt.Errorf("check song %d: %w: %w", id, domain.ErrDatabase, err)
	}
	if !exists {
		return domain.Song{}, fmt.Errorf("song %d: %w", id, domain.ErrNotFound)
	}
	return song, nil
}
