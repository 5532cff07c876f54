package song

import (
	"io"
	"net/http"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/logx"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
	v1 "github.com/yhafez/music-library-cloud-backup/internal/transport/web/v1"
)

// Upload — multipart-загрузка песни, поле file
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "song.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form failed", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	fh, hdr, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "no file uploaded", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer fh.Close()

	content, err := io.ReadAll(fh)
	if err != nil {
		logx.Error(h.Log, reqID, op, "read file failed", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	contentType := hdr.Header.Get("Content-Type")
	s, err := h.Catalog.Upload(r.Context(), hdr.Filename, content, contentType)
	if err != nil {
		logx.Error(h.Log, reqID, op, "upload failed", err, "filename", hdr.Filename)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "uploaded", "id", s.ID, "filename", s.Filename)
	v1.WriteOKData(w, r, s)
}
