package song

import (
	"net/http"
	"strconv"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/logx"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
	v1 "github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1"
)

// Delete — согласованное удаление песни по id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "song.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad song id", err, "id_raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	s, err := h.Catalog.Delete(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "deleted", "id", id, "filename", s.Filename)
	v1.WriteOKResponse(w, r, map[string]bool{strconv.FormatInt(id, 10): true})
}
