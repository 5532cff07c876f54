package song

import (
	"net/http"

	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/logx"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
	v1 "github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1"
)

// List — весь каталог песен
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "song.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	songs, err := h.Catalog.List(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(songs))
	v1.WriteOKData(w, r, songs)
}

// ListObjects — сырой листинг бакета (для оператора)
func (h *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	const op = "song.list_objects"
	reqID := mw.RequestIDFromCtx(r.Context())

	objects, err := h.Catalog.ListObjects(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "list objects failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(objects))
	v1.WriteOKData(w, r, objects)
}
