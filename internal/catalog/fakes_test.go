package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// ---- фейковый каталог ----

type fakeRepo struct {
	mu     sync.Mutex
	songs  map[domain.SongID]domain.Song
	nextID domain.SongID

	beginErr        error
	commitErr       error
	txInsertErr     error
	txDeleteErr     error
	insertWithIDErr error
	deleteErr       error
	listIDsErr      error
	listSongsErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{songs: make(map[domain.SongID]domain.Song), nextID: 1}
}

func (r *fakeRepo) Close()                     {}
func (r *fakeRepo) Ping(context.Context) error { return nil }

func (r *fakeRepo) Begin(ctx context.Context) (domain.CatalogTx, error) {
	if r.beginErr != nil {
		return nil, r.beginErr
	}
	return &fakeTx{r: r}, nil
}

func (r *fakeRepo) SongByName(ctx context.Context, filename string) (domain.Song, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.songs {
		if s.Filename == filename {
			return s, true, nil
		}
	}
	return domain.Song{}, false, nil
}

func (r *fakeRepo) SongByID(ctx context.Context, id domain.SongID) (domain.Song, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[id]
	return s, ok, nil
}

func (r *fakeRepo) ListSongs(ctx context.Context) ([]domain.Song, error) {
	if r.listSongsErr != nil {
		return nil, r.listSongsErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []domain.Song
	for _, s := range r.songs {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *fakeRepo) ListIDs(ctx context.Context) ([]domain.SongID, error) {
	if r.listIDsErr != nil {
		return nil, r.listIDsErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []domain.SongID
	for id := range r.songs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeRepo) InsertSongWithID(ctx context.Context, id domain.SongID, filename string, meta domain.Metadata) error {
	if r.insertWithIDErr != nil {
		return r.insertWithIDErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[id]; ok {
		return errors.New("duplicate id")
	}
	r.songs[id] = domain.Song{ID: id, Filename: filename, Metadata: meta, CreatedAt: time.Now()}
	if id >= r.nextID {
		r.nextID = id + 1
	}
	return nil
}

func (r *fakeRepo) DeleteSong(ctx context.Context, id domain.SongID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.songs[id]; !ok {
		return errors.New("song not found")
	}
	delete(r.songs, id)
	return nil
}

func (r *fakeRepo) ids() []domain.SongID {
	out, _ := r.ListIDs(context.Background())
	return out
}

// fakeTx копит изменения и применяет их только на Commit;
// id выдаются сразу — как sequence, который не откатывается
type fakeTx struct {
	r        *fakeRepo
	inserted []domain.Song
	deleted  []domain.SongID
	done     bool
}

func (t *fakeTx) InsertSong(ctx context.Context, filename string, meta domain.Metadata) (domain.Song, error) {
	if t.r.txInsertErr != nil {
		return domain.Song{}, t.r.txInsertErr
	}
	t.r.mu.Lock()
	id := t.r.nextID
	t.r.nextID++
	t.r.mu.Unlock()
	s := domain.Song{ID: id, Filename: filename, Metadata: meta, CreatedAt: time.Now()}
	t.inserted = append(t.inserted, s)
	return s, nil
}

func (t *fakeTx) DeleteSong(ctx context.Context, id domain.SongID) error {
	if t.r.txDeleteErr != nil {
		return t.r.txDeleteErr
	}
	t.r.mu.Lock()
	_, ok := t.r.songs[id]
	t.r.mu.Unlock()
	if !ok {
		return errors.New("song not found")
	}
	t.deleted = append(t.deleted, id)
	return nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.done = true
	if t.r.commitErr != nil {
		return t.r.commitErr
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	for _, s := range t.inserted {
		t.r.songs[s.ID] = s
	}
	for _, id := range t.deleted {
		delete(t.r.songs, id)
	}
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.done = true
	return nil
}

// ---- фейковое объектное хранилище ----

type fakeObject struct {
	data        []byte
	contentType string
	meta        map[string]string
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]fakeObject

	putErr  error
	delErr  error
	getErr  error
	listErr error
	statErr map[string]error

	putCalls    int
	deleteCalls int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]fakeObject), statErr: make(map[string]error)}
}

func (s *fakeStorage) Ping(context.Context) error { return nil }

func (s *fakeStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, meta map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putCalls++
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = fakeObject{data: data, contentType: contentType, meta: meta}
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, key string) (domain.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return domain.Object{}, s.getErr
	}
	obj, ok := s.objects[key]
	if !ok {
		return domain.Object{}, errors.New("key not found")
	}
	return domain.Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UserMeta:    obj.meta,
	}, nil
}

func (s *fakeStorage) Stat(ctx context.Context, key string) (domain.ObjectStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.statErr[key]; err != nil {
		return domain.ObjectStat{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ObjectStat{}, err
	}
	obj, ok := s.objects[key]
	if !ok {
		return domain.ObjectStat{}, errors.New("key not found")
	}
	return domain.ObjectStat{
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UserMeta:    obj.meta,
	}, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if s.delErr != nil {
		return s.delErr
	}
	// как в S3: удаление отсутствующего ключа — успех
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) List(ctx context.Context) ([]domain.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var res []domain.ObjectInfo
	for key, obj := range s.objects {
		res = append(res, domain.ObjectInfo{Key: key, Size: int64(len(obj.data))})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })
	return res, nil
}

func (s *fakeStorage) keys() []string {
	infos, _ := s.List(context.Background())
	keys := make([]string, 0, len(infos))
	for _, in := range infos {
		keys = append(keys, in.Key)
	}
	return keys
}

func (s *fakeStorage) putRaw(id domain.SongID, data []byte, contentType string, meta map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[strconv.FormatInt(id, 10)] = fakeObject{data: data, contentType: contentType, meta: meta}
}

// ---- фейковый экстрактор ----

type fakeExtractor struct {
	meta domain.Metadata
	err  error
}

func (e *fakeExtractor) Extract(content []byte, contentType string) (domain.Metadata, error) {
	if e.err != nil {
		return domain.Metadata{}, e.err
	}
	return e.meta, nil
}

// ---- фейковый кеш ----

type fakeCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{m: make(map[string][]byte)} }

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = val
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}

func (c *fakeCache) SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[key]; ok {
		return false, nil
	}
	c.m[key] = val
	return true, nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close()                     {}
