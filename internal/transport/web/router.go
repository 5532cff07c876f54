package web

import (
	"log"
	"net/http"

	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1/health"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1/song"
)

func newRouter(hh *health.Handler, sh *song.Handler, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// songs
	mux.HandleFunc("GET /v1/songs", sh.List)
	mux.HandleFunc("POST /v1/songs", limitBody(64<<20, sh.Upload)) // 64MB лимит
	mux.HandleFunc("DELETE /v1/songs/{id}", sh.Delete)
	mux.HandleFunc("GET /v1/songs/{id}/download", sh.Download)
	mux.HandleFunc("POST /v1/songs/sync", sh.Sync)

	// сырой вид бакета
	mux.HandleFunc("GET /v1/objects", sh.ListObjects)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
