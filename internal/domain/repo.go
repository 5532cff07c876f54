package domain

import "context"

// CatalogTx — транзакция каталога на выделенном соединении.
// Создаётся координатором (catalog.Service) и живёт ровно одну
// согласованную операцию; Rollback после Commit безопасен (no-op).
type CatalogTx interface {
	// InsertSong вставляет песню, id присваивает база (RETURNING)
	InsertSong(ctx context.Context, filename string, meta Metadata) (Song, error)
	// DeleteSong удаляет песню; отсутствие строки — ошибка
	DeleteSong(ctx context.Context, id SongID) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// CatalogRepo — порт реляционного каталога. Реализация — Postgres.
type CatalogRepo interface {
	Close()
	Ping(context.Context) error

	// Begin открывает транзакцию на выделенном соединении пула
	Begin(ctx context.Context) (CatalogTx, error)

	// Чтения вне транзакций (guard, list, sync-сканы)
	SongByName(ctx context.Context, filename string) (Song, bool, error)
	SongByID(ctx context.Context, id SongID) (Song, bool, error)
	ListSongs(ctx context.Context) ([]Song, error)
	ListIDs(ctx context.Context) ([]SongID, error)

	// Одиночные правки для reconciliation (вне координатора,
	// по образцу исходной системы — каждая сама по себе атомарна)
	InsertSongWithID(ctx context.Context, id SongID, filename string, meta Metadata) error
	DeleteSong(ctx context.Context, id SongID) error
}
