package song

import (
	"net/http"

	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/logx"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
	v1 "github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1"
)

// Sync — запускает reconciliation каталога и бакета
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	const op = "song.sync"
	reqID := mw.RequestIDFromCtx(r.Context())

	report, err := h.Catalog.Sync(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "sync failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok",
		"added", len(report.Added), "removed", len(report.Removed), "warnings", len(report.Warnings))
	v1.WriteOKData(w, r, report)
}
