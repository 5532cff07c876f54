package song

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/logx"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
	v1 "github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1"
)

// Download — отдаёт исходные байты песни как attachment
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "song.download"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad song id", err, "id_raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	obj, s, err := h.Catalog.Download(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "download failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("X-Request-ID", reqID)

	if _, err := io.Copy(w, obj.Body); err != nil {
		// заголовки уже ушли — только лог
		logx.Error(h.Log, reqID, op, "stream interrupted", err, "id", id)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "id", id, "size", obj.Size)
}
