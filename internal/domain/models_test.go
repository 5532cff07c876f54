package domain

import (
	"testing"
)

// S3-клиенты возвращают user-metadata с канонизированными ключами —
// восстановление не должно зависеть от регистра.
func TestMetadataFromMapCanonicalKeys(t *testing.T) {
	meta := map[string]string{
		"Filename": "track.mp3",
		"Title":    "Bohemian Rhapsody",
		"Artist":   "Queen",
		"Album":    "A Night at the Opera",
		"Genre":    "Rock, Progressive Rock",
		"Key":      "Bb",
		"Bpm":      "72",
	}

	m, filename := MetadataFromMap(meta)
	if filename != "track.mp3" {
		t.Fatalf("filename = %q, want track.mp3", filename)
	}
	if m.Artist != "Queen" || m.Title != "Bohemian Rhapsody" {
		t.Fatalf("unexpected tags: %+v", m)
	}
	if len(m.Genre) != 2 || m.Genre[0] != "Rock" || m.Genre[1] != "Progressive Rock" {
		t.Fatalf("genre = %v", m.Genre)
	}
	if m.Key != "Bb" || m.BPM != "72" {
		t.Fatalf("key/bpm = %q/%q", m.Key, m.BPM)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	src := Metadata{
		Title:  "Song",
		Artist: "Artist",
		Album:  "Album",
		Genre:  []string{"House", "Techno"},
		Key:    "Am",
		BPM:    "128",
	}
	m, filename := MetadataFromMap(src.ToMap("song.mp3"))
	if filename != "song.mp3" {
		t.Fatalf("filename = %q", filename)
	}
	if m.Title != src.Title || m.Key != src.Key || m.BPM != src.BPM {
		t.Fatalf("round trip mismatch: %+v", m)
	}
	if len(m.Genre) != 2 || m.Genre[1] != "Techno" {
		t.Fatalf("genre = %v", m.Genre)
	}
}

// Объект без метаданных (залит мимо сервиса) даёт пустое имя —
// сигнал для sync пропустить бэкофил.
func TestMetadataFromMapMissing(t *testing.T) {
	_, filename := MetadataFromMap(map[string]string{})
	if filename != "" {
		t.Fatalf("filename = %q, want empty", filename)
	}
}

func TestValidFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "regular mp3", in: "track.mp3", want: true},
		{name: "spaces ok", in: "my song (remix).flac", want: true},
		{name: "empty", in: "", want: false},
		{name: "no extension", in: "track", want: false},
		{name: "path separator", in: "a/b.mp3", want: false},
		{name: "backslash", in: `a\b.mp3`, want: false},
		{name: "dot dot", in: "..secret.mp3", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidFilename(tt.in); got != tt.want {
				t.Fatalf("ValidFilename(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
