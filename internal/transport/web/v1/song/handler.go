package song

import (
	"context"
	"log"

	"github.com/yhafez/music-library-cloud-backup/internal/catalog"
	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// CatalogService — то, что транспорту нужно от ядра
type CatalogService interface {
	Upload(ctx context.Context, filename string, content []byte, contentType string) (domain.Song, error)
	Delete(ctx context.Context, id domain.SongID) (domain.Song, error)
	List(ctx context.Context) ([]domain.Song, error)
	ListObjects(ctx context.Context) ([]domain.ObjectInfo, error)
	Download(ctx context.Context, id domain.SongID) (domain.Object, domain.Song, error)
	Sync(ctx context.Context) (catalog.SyncReport, error)
}

type Handler struct {
	Log     *log.Logger
	Catalog CatalogService
}
