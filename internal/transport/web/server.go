package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/yhafez/music-library-cloud-backup/internal/config"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1/health"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1/song"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, svc song.CatalogService, db, storage, cache health.Pinger) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	songLog := log.New(logger.Writer(), logger.Prefix()+"[song] ", logger.Flags())

	healthHandler := &health.Handler{DB: db, Storage: storage, Cache: cache, Log: healthLog}
	songHandler := &song.Handler{Log: songLog, Catalog: svc}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(healthHandler, songHandler, logger),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
