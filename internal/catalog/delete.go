package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// Delete — конвейер удаления: guard → координированная пара
// {delete строки, delete объекта}.
//
// Компенсации у удаления нет: если commit провалился после того,
// как объект уже удалён из S3, вернуть его нечем — осиротевшую
// строку каталога приберёт ближайший Sync.
func (s *Service) Delete(ctx context.Context, id domain.SongID) (domain.Song, error) {
	const op = "catalog.delete"

	// guard: песня существует; иначе not_found без обращений к хранилищам
	song, err := s.guardSongExists(ctx, id)
	if err != nil {
		return domain.Song{}, fmt.Errorf("%s: %w", op, err)
	}
	key := strconv.FormatInt(id, 10)

	err = s.runCoordinated(ctx, op,
		func(ctx context.Context, tx domain.CatalogTx) error {
			return tx.DeleteSong(ctx, id)
		},
		func(ctx context.Context) error {
			return s.storage.Delete(ctx, key)
		},
		nil,
	)
	if err != nil {
		return domain.Song{}, err
	}

	s.invalidateList(ctx)
	s.log.Printf("deleted %q id=%d", song.Filename, id)
	return song, nil
}
