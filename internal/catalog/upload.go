package catalog

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// Upload — конвейер загрузки: guard → разбор тегов → координированная
// пара {insert строки, put объекта}. Либо и строка, и объект видимы
// после возврата, либо ни то ни другое (с оговоркой про компенсацию
// в txn.go).
func (s *Service) Upload(ctx context.Context, filename string, content []byte, contentType string) (domain.Song, error) {
	const op = "catalog.upload"

	if !domain.ValidFilename(filename) {
		return domain.Song{}, fmt.Errorf("%s: filename %q: %w", op, filename, domain.ErrBadParams)
	}
	if len(content) == 0 {
		return domain.Song{}, fmt.Errorf("%s: empty content: %w", op, domain.ErrBadParams)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// guard: имя свободно (быстрый отказ до любых мутаций)
	if err := s.guardFilenameFree(ctx, filename); err != nil {
		return domain.Song{}, fmt.Errorf("%s: %w", op, err)
	}

	// теги; нечитаемый файл отбрасываем до любых мутаций
	meta, err := s.extractor.Extract(content, contentType)
	if err != nil {
		return domain.Song{}, fmt.Errorf("%s: %w: %w", op, domain.ErrMetadataParse, err)
	}

	var (
		song domain.Song
		key  string
	)
	err = s.runCoordinated(ctx, op,
		func(ctx context.Context, tx domain.CatalogTx) error {
			inserted, err := tx.InsertSong(ctx, filename, meta)
			if err != nil {
				return err
			}
			song = inserted
			key = strconv.FormatInt(song.ID, 10)
			return nil
		},
		func(ctx context.Context) error {
			return s.storage.Put(ctx, key, bytes.NewReader(content), int64(len(content)),
				contentType, meta.ToMap(filename))
		},
		// компенсация при провале commit: подчистить только что залитый объект
		func(ctx context.Context) error {
			return s.storage.Delete(ctx, key)
		},
	)
	if err != nil {
		return domain.Song{}, err
	}

	s.invalidateList(ctx)
	s.log.Printf("uploaded %q id=%d", filename, song.ID)
	return song, nil
}
