package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
	"github.com/yhafez/music-library-cloud-backup/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(http.StatusBadRequest, "bad params")
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.Fail(http.StatusConflict, "conflict")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail(http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrMetadataParse):
		return http.StatusUnprocessableEntity, domain.Fail(http.StatusUnprocessableEntity, "failed to parse metadata")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail(http.StatusMethodNotAllowed, "method not allowed")
	case errors.Is(err, domain.ErrObjectStore):
		return http.StatusBadGateway, domain.Fail(http.StatusBadGateway, "object store failure")
	case errors.Is(err, domain.ErrTransaction):
		// самое серьёзное: расхождение хранилищ возможно, нужен sync
		return http.StatusInternalServerError, domain.Fail(http.StatusInternalServerError, "transaction failure, run sync")
	case errors.Is(err, domain.ErrDatabase):
		return http.StatusInternalServerError, domain.Fail(http.StatusInternalServerError, "database failure")
	default:
		return http.StatusInternalServerError, domain.Fail(http.StatusInternalServerError, "unexpected")
	}
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkData(data))
}
func WriteOKResponse(w http.ResponseWriter, r *http.Request, resp any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkResponse(resp))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
