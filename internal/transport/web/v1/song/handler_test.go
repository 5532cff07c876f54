package song

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhafez/music-library-cloud-backup/internal/catalog"
	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// stubCatalog — управляемая замена ядра для транспортных тестов
type stubCatalog struct {
	song    domain.Song
	songs   []domain.Song
	objects []domain.ObjectInfo
	object  domain.Object
	report  catalog.SyncReport
	err     error
}

func (s *stubCatalog) Upload(ctx context.Context, filename string, content []byte, contentType string) (domain.Song, error) {
	return s.song, s.err
}
func (s *stubCatalog) Delete(ctx context.Context, id domain.SongID) (domain.Song, error) {
	return s.song, s.err
}
func (s *stubCatalog) List(ctx context.Context) ([]domain.Song, error) { return s.songs, s.err }
func (s *stubCatalog) ListObjects(ctx context.Context) ([]domain.ObjectInfo, error) {
	return s.objects, s.err
}
func (s *stubCatalog) Download(ctx context.Context, id domain.SongID) (domain.Object, domain.Song, error) {
	return s.object, s.song, s.err
}
func (s *stubCatalog) Sync(ctx context.Context) (catalog.SyncReport, error) {
	return s.report, s.err
}

func testHandler(stub *stubCatalog) *Handler {
	return &Handler{Log: log.New(io.Discard, "", 0), Catalog: stub}
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadHandler(t *testing.T) {
	stub := &stubCatalog{song: domain.Song{ID: 1, Filename: "track.mp3"}}
	h := testHandler(stub)

	body, contentType := multipartBody(t, "track.mp3", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/v1/songs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var env domain.APIEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
	assert.NotNil(t, env.Data)
}

func TestUploadHandlerConflict(t *testing.T) {
	stub := &stubCatalog{err: domain.ErrConflict}
	h := testHandler(stub)

	body, contentType := multipartBody(t, "track.mp3", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPost, "/v1/songs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUploadHandlerNoFile(t *testing.T) {
	h := testHandler(&stubCatalog{})

	req := httptest.NewRequest(http.MethodPost, "/v1/songs", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "ok", id: "1", wantStatus: http.StatusOK},
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "not found", id: "999", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "transaction failure", id: "1", err: domain.ErrTransaction, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(&stubCatalog{err: tt.err})

			req := httptest.NewRequest(http.MethodDelete, "/v1/songs/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()

			h.Delete(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDownloadHandlerHeaders(t *testing.T) {
	content := []byte("mp3 bytes")
	stub := &stubCatalog{
		song: domain.Song{ID: 1, Filename: "track.mp3"},
		object: domain.Object{
			Body:        io.NopCloser(bytes.NewReader(content)),
			Size:        int64(len(content)),
			ContentType: "audio/mpeg",
		},
	}
	h := testHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/songs/1/download", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	h.Download(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="track.mp3"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestSyncHandler(t *testing.T) {
	stub := &stubCatalog{report: catalog.SyncReport{Added: []string{"4"}, Removed: []domain.SongID{1}}}
	h := testHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/songs/sync", nil)
	rec := httptest.NewRecorder()

	h.Sync(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var env domain.APIEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
}

func TestSyncHandlerObjectStoreDown(t *testing.T) {
	h := testHandler(&stubCatalog{err: errors.Join(domain.ErrObjectStore, errors.New("list failed"))})

	req := httptest.NewRequest(http.MethodPost, "/v1/songs/sync", nil)
	rec := httptest.NewRecorder()

	h.Sync(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
