package tags

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/dhowden/tag"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// Extractor читает теги аудиофайла библиотекой dhowden/tag.
// Key и BPM стандартный интерфейс библиотеки не отдаёт —
// достаём из сырых фреймов (TKEY/TBPM у ID3v2).
type Extractor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Extractor {
	return &Extractor{logger: logger}
}

func (e *Extractor) Extract(content []byte, contentType string) (domain.Metadata, error) {
	m, err := tag.ReadFrom(bytes.NewReader(content))
	if err != nil {
		e.logger.Printf("extract failed (type=%q): %v", contentType, err)
		return domain.Metadata{}, fmt.Errorf("read tags: %w", err)
	}

	var genre []string
	if g := strings.TrimSpace(m.Genre()); g != "" {
		for _, part := range strings.Split(g, ",") {
			if p := strings.TrimSpace(part); p != "" {
				genre = append(genre, p)
			}
		}
	}

	out := domain.Metadata{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  genre,
		Key:    rawFrame(m, "TKEY"),
		BPM:    rawFrame(m, "TBPM"),
	}
	e.logger.Printf("extract ok format=%s title=%q artist=%q", m.Format(), out.Title, out.Artist)
	return out, nil
}

// rawFrame достаёт строковое значение сырого фрейма, если он есть
func rawFrame(m tag.Metadata, id string) string {
	v, ok := m.Raw()[id]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
