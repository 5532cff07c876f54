package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

const songColumns = "id, filename, metadata, created_at"

// scanSong разбирает строку songs (metadata лежит в jsonb)
func scanSong(row pgx.Row) (domain.Song, error) {
	var (
		s   domain.Song
		raw []byte
	)
	if err := row.Scan(&s.ID, &s.Filename, &raw, &s.CreatedAt); err != nil {
		return domain.Song{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.Metadata); err != nil {
			return domain.Song{}, err
		}
	}
	return s, nil
}

func (r *PGRepo) SongByName(ctx context.Context, filename string) (domain.Song, bool, error) {
	q := r.qb().Select(songColumns).From(r.songs()).Where(sq.Eq{"filename": filename})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SongByName", sqlStr, args)

	start := time.Now()
	s, err := scanSong(r.pool.QueryRow(ctx, sqlStr, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("SongByName miss in %s name=%q", time.Since(start), filename)
		return domain.Song{}, false, nil
	}
	if err != nil {
		r.logger.Printf("SongByName scan error after %s: %v", time.Since(start), err)
		return domain.Song{}, false, err
	}
	r.logger.Printf("SongByName ok in %s id=%d", time.Since(start), s.ID)
	return s, true, nil
}

func (r *PGRepo) SongByID(ctx context.Context, id domain.SongID) (domain.Song, bool, error) {
	q := r.qb().Select(songColumns).From(r.songs()).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("SongByID", sqlStr, args)

	start := time.Now()
	s, err := scanSong(r.pool.QueryRow(ctx, sqlStr, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("SongByID miss in %s id=%d", time.Since(start), id)
		return domain.Song{}, false, nil
	}
	if err != nil {
		r.logger.Printf("SongByID scan error after %s: %v", time.Since(start), err)
		return domain.Song{}, false, err
	}
	r.logger.Printf("SongByID ok in %s id=%d", time.Since(start), s.ID)
	return s, true, nil
}

func (r *PGRepo) ListSongs(ctx context.Context) ([]domain.Song, error) {
	q := r.qb().Select(songColumns).From(r.songs()).OrderBy("id ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListSongs", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ListSongs query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			r.logger.Printf("ListSongs scan error: %v", err)
			return nil, err
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ListSongs rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("ListSongs ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

// ListIDs — полный скан идентификаторов для reconciliation
func (r *PGRepo) ListIDs(ctx context.Context) ([]domain.SongID, error) {
	q := r.qb().Select("id").From(r.songs()).OrderBy("id ASC")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ListIDs", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ListIDs query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var ids []domain.SongID
	for rows.Next() {
		var id domain.SongID
		if err := rows.Scan(&id); err != nil {
			r.logger.Printf("ListIDs scan error: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ListIDs rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("ListIDs ok in %s count=%d", time.Since(start), len(ids))
	return ids, nil
}

// InsertSongWithID — бэкофил строки из S3 при sync: id задаём явно,
// затем подтягиваем sequence, чтобы будущие автo-id не конфликтовали.
func (r *PGRepo) InsertSongWithID(ctx context.Context, id domain.SongID, filename string, meta domain.Metadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	q := r.qb().Insert(r.songs()).
		Columns("id", "filename", "metadata").
		Values(id, filename, payload)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("InsertSongWithID", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("InsertSongWithID exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() != 1 {
		r.logger.Printf("InsertSongWithID unexpected rows=%d id=%d", tag.RowsAffected(), id)
		return errNoRows("insert with id affected no rows")
	}

	bump := "SELECT setval(pg_get_serial_sequence('" + r.songs() + "', 'id'), (SELECT GREATEST(MAX(id), 1) FROM " + r.songs() + "))"
	if _, err := r.pool.Exec(ctx, bump); err != nil {
		r.logger.Printf("InsertSongWithID setval error: %v", err)
		return err
	}
	r.logger.Printf("InsertSongWithID ok in %s id=%d name=%q", time.Since(start), id, filename)
	return nil
}

// DeleteSong — одиночное удаление для reconciliation (вне координатора)
func (r *PGRepo) DeleteSong(ctx context.Context, id domain.SongID) error {
	q := r.qb().Delete(r.songs()).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteSong", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteSong exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() != 1 {
		r.logger.Printf("DeleteSong no rows affected in %s id=%d", time.Since(start), id)
		return errNoRows("song not found")
	}
	r.logger.Printf("DeleteSong ok in %s id=%d", time.Since(start), id)
	return nil
}

func errNoRows(msg string) error { return errors.New(msg) }
