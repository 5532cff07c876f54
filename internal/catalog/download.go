package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// Download отдаёт поток контента вместе с записью каталога.
// Закрыть Object.Body обязан вызывающий.
func (s *Service) Download(ctx context.Context, id domain.SongID) (domain.Object, domain.Song, error) {
	const op = "catalog.download"

	song, err := s.guardSongExists(ctx, id)
	if err != nil {
		return domain.Object{}, domain.Song{}, fmt.Errorf("%s: %w", op, err)
	}

	obj, err := s.storage.Get(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		return domain.Object{}, domain.Song{}, fmt.Errorf("%s: get %d: %w: %w", op, id, domain.ErrObjectStore, err)
	}
	return obj, song, nil
}
