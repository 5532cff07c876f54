package catalog

import (
	"io"
	"log"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

func testService(repo domain.CatalogRepo, storage domain.ObjectStorage,
	extractor domain.MetadataExtractor, cache domain.Cache) *Service {

	return New(log.New(io.Discard, "", 0), repo, storage, extractor, cache, Options{})
}

func testMeta() domain.Metadata {
	return domain.Metadata{
		Title:  "Bohemian Rhapsody",
		Artist: "Queen",
		Album:  "A Night at the Opera",
		Genre:  []string{"Rock"},
		Key:    "Bb",
		BPM:    "72",
	}
}
