// Package catalog — ядро согласованности двух хранилищ: каталога
// песен в Postgres и их контента в S3. Все мутации идут через
// координатор транзакций (txn.go), расхождения чинит Sync (sync.go).
package catalog

import (
	"context"
	"log"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

type Service struct {
	log       *log.Logger
	repo      domain.CatalogRepo
	storage   domain.ObjectStorage
	extractor domain.MetadataExtractor
	cache     domain.Cache

	listTTL     int // секунд; кеш списка песен
	syncLockTTL int // секунд; страховочный TTL single-flight блокировки sync
}

type Options struct {
	ListTTL     int
	SyncLockTTL int
}

func New(logger *log.Logger, repo domain.CatalogRepo, storage domain.ObjectStorage,
	extractor domain.MetadataExtractor, cache domain.Cache, opts Options) *Service {

	if opts.ListTTL <= 0 {
		opts.ListTTL = 30
	}
	if opts.SyncLockTTL <= 0 {
		opts.SyncLockTTL = 300
	}
	return &Service{
		log:         logger,
		repo:        repo,
		storage:     storage,
		extractor:   extractor,
		cache:       cache,
		listTTL:     opts.ListTTL,
		syncLockTTL: opts.SyncLockTTL,
	}
}

// invalidateList сбрасывает кеш списка; ошибки кеша не фатальны
func (s *Service) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, domain.CacheKeySongList()); err != nil {
		s.log.Printf("list cache invalidation failed: %v", err)
	}
}
