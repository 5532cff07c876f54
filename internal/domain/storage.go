package domain

import (
	"context"
	"io"
)

// Элемент листинга бакета
type ObjectInfo struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Атрибуты объекта без тела (HEAD)
type ObjectStat struct {
	Size        int64
	ContentType string
	UserMeta    map[string]string
}

// Объект с открытым потоком тела. Закрыть Body обязан вызывающий.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	UserMeta    map[string]string
}

// ObjectStorage — порт объектного хранилища (S3/MinIO).
// Клиент не хранит состояние и безопасен для конкурентных вызовов.
type ObjectStorage interface {
	Ping(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error
	Get(ctx context.Context, key string) (Object, error)
	Stat(ctx context.Context, key string) (ObjectStat, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}
