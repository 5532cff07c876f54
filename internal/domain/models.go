package domain

import (
	"strings"
	"time"
)

// Идентификатор песни. Присваивается базой при вставке и в строковом
// виде используется как ключ объекта в S3 — единственная связка между
// двумя хранилищами.
type SongID = int64

// Песня каталога (метаданные без тела файла; контент лежит в S3)
type Song struct {
	ID        SongID    `json:"id"`
	Filename  string    `json:"filename"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// Теги, извлечённые из аудиофайла
type Metadata struct {
	Title  string   `json:"title"`
	Artist string   `json:"artist"`
	Album  string   `json:"album"`
	Genre  []string `json:"genre,omitempty"`
	Key    string   `json:"key"`
	BPM    string   `json:"bpm"`
}

// Ключи user-metadata объекта в S3. Структурных типов там нет,
// поэтому всё сериализуем в строки.
const (
	MetaKeyFilename = "filename"
	MetaKeyTitle    = "title"
	MetaKeyArtist   = "artist"
	MetaKeyAlbum    = "album"
	MetaKeyGenre    = "genre"
	MetaKeyKey      = "key"
	MetaKeyBPM      = "bpm"
)

// ToMap сериализует теги в user-metadata объекта (вместе с именем файла,
// чтобы при sync каталог можно было восстановить из одного S3).
func (m Metadata) ToMap(filename string) map[string]string {
	return map[string]string{
		MetaKeyFilename: filename,
		MetaKeyTitle:    m.Title,
		MetaKeyArtist:   m.Artist,
		MetaKeyAlbum:    m.Album,
		MetaKeyGenre:    strings.Join(m.Genre, ", "),
		MetaKeyKey:      m.Key,
		MetaKeyBPM:      m.BPM,
	}
}

// MetadataFromMap восстанавливает теги из user-metadata объекта.
// S3-клиенты канонизируют регистр ключей, поэтому сравниваем без регистра.
// Вторым значением возвращается имя файла ("" — метаданные неполные).
func MetadataFromMap(meta map[string]string) (Metadata, string) {
	lower := make(map[string]string, len(meta))
	for k, v := range meta {
		lower[strings.ToLower(k)] = v
	}
	var genre []string
	if g := lower[MetaKeyGenre]; g != "" {
		for _, part := range strings.Split(g, ",") {
			if p := strings.TrimSpace(part); p != "" {
				genre = append(genre, p)
			}
		}
	}
	return Metadata{
		Title:  lower[MetaKeyTitle],
		Artist: lower[MetaKeyArtist],
		Album:  lower[MetaKeyAlbum],
		Genre:  genre,
		Key:    lower[MetaKeyKey],
		BPM:    lower[MetaKeyBPM],
	}, lower[MetaKeyFilename]
}
