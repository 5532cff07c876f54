package s3

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// Storage — S3/MinIO адаптер. Клиент без состояния, безопасен
// для конкурентных вызовов; таймауты — на уровне транспорта клиента.
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

// Ping проверяет доступность бакета (readiness)
func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("ping failed: %v", err)
		return err
	}
	if !ok {
		s.logger.Printf("ping: bucket %q does not exist", s.bucket)
		return errBucketMissing(s.bucket)
	}
	return nil
}

// Put загружает объект по известному ключу вместе с user-metadata
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error {
	start := time.Now()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: meta,
	})
	if err != nil {
		s.logger.Printf("PUT %q failed after %s: %v", key, time.Since(start), err)
		return err
	}
	s.logger.Printf("PUT %q ok in %s size=%d", key, time.Since(start), info.Size)
	return nil
}

// Get открывает поток тела объекта; закрыть Body обязан вызывающий
func (s *Storage) Get(ctx context.Context, key string) (domain.Object, error) {
	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Printf("GET %q failed: %v", key, err)
		return domain.Object{}, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		s.logger.Printf("GET %q stat failed: %v", key, err)
		return domain.Object{}, err
	}
	s.logger.Printf("GET %q ok size=%d", key, info.Size)
	return domain.Object{
		Body:        obj,
		Size:        info.Size,
		ContentType: info.ContentType,
		UserMeta:    info.UserMetadata,
	}, nil
}

// Stat — HEAD объекта: размер, content-type и user-metadata
func (s *Storage) Stat(ctx context.Context, key string) (domain.ObjectStat, error) {
	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		s.logger.Printf("HEAD %q failed: %v", key, err)
		return domain.ObjectStat{}, err
	}
	s.logger.Printf("HEAD %q ok size=%d", key, info.Size)
	return domain.ObjectStat{
		Size:        info.Size,
		ContentType: info.ContentType,
		UserMeta:    info.UserMetadata,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	start := time.Now()
	if err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Printf("DELETE %q failed after %s: %v", key, time.Since(start), err)
		return err
	}
	s.logger.Printf("DELETE %q ok in %s", key, time.Since(start))
	return nil
}

// List — полный листинг бакета для reconciliation
func (s *Storage) List(ctx context.Context) ([]domain.ObjectInfo, error) {
	start := time.Now()
	var res []domain.ObjectInfo
	for obj := range s.cl.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			s.logger.Printf("LIST failed after %s: %v", time.Since(start), obj.Err)
			return nil, obj.Err
		}
		res = append(res, domain.ObjectInfo{Key: obj.Key, Size: obj.Size})
	}
	s.logger.Printf("LIST ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

type errBucketMissing string

func (e errBucketMissing) Error() string { return "bucket " + string(e) + " does not exist" }
