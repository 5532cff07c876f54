package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeySongList() string { return "songs:list" }
func CacheKeySyncLock() string { return "sync:inflight" }

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	// SetNX — для single-flight блокировки sync
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Ping(context.Context) error
	Close()
}
