package domain

// MetadataExtractor — порт разбора тегов аудиофайла.
// Повреждённый или неизвестный формат → ошибка (ErrMetadataParse
// навешивает вызывающий слой).
type MetadataExtractor interface {
	Extract(content []byte, contentType string) (Metadata, error)
}
