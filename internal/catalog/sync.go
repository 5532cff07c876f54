package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// Итог reconciliation: что реально починили и что пропустили
type SyncReport struct {
	Added    []string        `json:"added"`
	Removed  []domain.SongID `json:"removed"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Sync — reconciliation двух хранилищ. Два независимых полных скана
// (без общего снапшота: конкурентная мутация может дать ложный кандидат,
// он самоисправится следующим прогоном), затем симметрическая разность
// идентификаторов:
//
//   - ключ есть в S3, строки нет  → бэкофил строки из user-metadata объекта
//   - строка есть, ключа нет в S3 → чистка осиротевшей строки
//
// Ключи, не являющиеся числом, игнорируются (легаси-объекты не чиним).
// Ошибки по отдельным элементам копятся как warnings и не прерывают
// батч — sync обязан дойти до конца; фатальна только ошибка листинга.
//
// Повторный вход не безопасен: параллельные прогоны удвоили бы починку,
// поэтому прогон держит single-flight блокировку в Redis.
func (s *Service) Sync(ctx context.Context) (SyncReport, error) {
	const op = "catalog.sync"
	report := SyncReport{Added: []string{}, Removed: []domain.SongID{}}

	// начатый прогон доводим до конца даже если вызывающий ушёл:
	// отмена снаружи роняла бы оставшиеся починки и не давала снять
	// блокировку — та висела бы до истечения TTL
	ctx = context.WithoutCancel(ctx)

	if s.cache != nil {
		ok, err := s.cache.SetNX(ctx, domain.CacheKeySyncLock(), []byte("1"), s.syncLockTTL)
		if err != nil {
			// кеш недоступен — починку не блокируем, но предупреждаем
			s.log.Printf("%s: sync lock unavailable, proceeding unguarded: %v", op, err)
		} else if !ok {
			return report, fmt.Errorf("%s: already running: %w", op, domain.ErrConflict)
		} else {
			defer func() {
				if err := s.cache.Del(ctx, domain.CacheKeySyncLock()); err != nil {
					s.log.Printf("%s: sync lock release failed (expires by ttl): %v", op, err)
				}
			}()
		}
	}

	objects, err := s.storage.List(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: list objects: %w: %w", op, domain.ErrObjectStore, err)
	}
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: list catalog: %w: %w", op, domain.ErrDatabase, err)
	}

	idSet := make(map[domain.SongID]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	keySet := make(map[string]struct{}, len(objects))

	// toAdd: числовые ключи S3 без строки в каталоге
	var toAdd []domain.SongID
	for _, obj := range objects {
		keySet[obj.Key] = struct{}{}
		id, err := strconv.ParseInt(obj.Key, 10, 64)
		if err != nil {
			s.log.Printf("%s: skipping non-numeric key %q", op, obj.Key)
			continue
		}
		if _, ok := idSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}

	// toRemove: строки каталога без объекта
	var toRemove []domain.SongID
	for _, id := range ids {
		if _, ok := keySet[strconv.FormatInt(id, 10)]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	s.log.Printf("%s: candidates add=%d remove=%d", op, len(toAdd), len(toRemove))

	for _, id := range toAdd {
		key := strconv.FormatInt(id, 10)
		stat, err := s.storage.Stat(ctx, key)
		if err != nil {
			report.warnf(s.log, "%s: stat %q: %v", op, key, err)
			continue
		}
		meta, filename := domain.MetadataFromMap(stat.UserMeta)
		if filename == "" {
			report.warnf(s.log, "%s: object %q has no usable metadata, skipped", op, key)
			continue
		}
		if err := s.repo.InsertSongWithID(ctx, id, filename, meta); err != nil {
			report.warnf(s.log, "%s: backfill %q: %v", op, key, err)
			continue
		}
		report.Added = append(report.Added, key)
	}

	for _, id := range toRemove {
		if err := s.repo.DeleteSong(ctx, id); err != nil {
			report.warnf(s.log, "%s: purge id=%d: %v", op, id, err)
			continue
		}
		report.Removed = append(report.Removed, id)
	}

	if len(report.Added) > 0 || len(report.Removed) > 0 {
		s.invalidateList(ctx)
	}
	s.log.Printf("%s: done added=%d removed=%d warnings=%d",
		op, len(report.Added), len(report.Removed), len(report.Warnings))
	return report, nil
}

func (r *SyncReport) warnf(l logPrinter, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.Printf("%s", msg)
	r.Warnings = append(r.Warnings, msg)
}

type logPrinter interface {
	Printf(format string, v ...any)
}
