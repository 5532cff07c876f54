package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yhafez/music-library-cloud-backup/internal/catalog"
	"github.com/yhafez/music-library-cloud-backup/internal/config"
	"github.com/yhafez/music-library-cloud-backup/internal/domain"
	redisx "github.com/yhafez/music-library-cloud-backup/internal/infra/cache/redis"
	"github.com/yhafez/music-library-cloud-backup/internal/infra/database/postgres"
	"github.com/yhafez/music-library-cloud-backup/internal/infra/metadata/tags"
	s3storage "github.com/yhafez/music-library-cloud-backup/internal/infra/storage/s3"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	repo    domain.CatalogRepo
	storage domain.ObjectStorage
	cache   domain.Cache
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	tagsLog := log.New(base.Writer(), base.Prefix()+"[tags] ", base.Flags())
	catalogLog := log.New(base.Writer(), base.Prefix()+"[catalog] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	}
	s3, err := s3storage.New(ctx, s3cfg, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}
	base.Println("S3 storage is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	extractor := tags.New(tagsLog)

	base.Println("init Catalog service")
	svc := catalog.New(catalogLog, pgRepo, s3, extractor, rc, catalog.Options{
		ListTTL:     cfg.ListTTL,
		SyncLockTTL: cfg.SyncLockTTL,
	})

	base.Println("init Server")
	server := web.New(serverLog, cfg, svc, pgRepo, s3, rc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		repo:    pgRepo,
		storage: s3,
		cache:   rc}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
