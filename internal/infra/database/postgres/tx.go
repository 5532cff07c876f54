package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// songTx — транзакция каталога на выделенном соединении пула.
// Соединение возвращается в пул ровно один раз: либо в Commit,
// либо в Rollback (повторный Rollback после Commit — no-op).
type songTx struct {
	repo     *PGRepo
	conn     *pgxpool.Conn
	tx       pgx.Tx
	released bool
}

// Begin захватывает соединение и открывает транзакцию
func (r *PGRepo) Begin(ctx context.Context) (domain.CatalogTx, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		r.logger.Printf("Begin acquire error: %v", err)
		return nil, err
	}
	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		r.logger.Printf("Begin error: %v", err)
		return nil, err
	}
	r.logger.Println("Begin ok")
	return &songTx{repo: r, conn: conn, tx: tx}, nil
}

func (t *songTx) release() {
	if t.released {
		return
	}
	t.released = true
	t.conn.Release()
}

func (t *songTx) Commit(ctx context.Context) error {
	defer t.release()
	if err := t.tx.Commit(ctx); err != nil {
		t.repo.logger.Printf("Commit error: %v", err)
		return err
	}
	t.repo.logger.Println("Commit ok")
	return nil
}

func (t *songTx) Rollback(ctx context.Context) error {
	defer t.release()
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		t.repo.logger.Printf("Rollback error: %v", err)
		return err
	}
	return nil
}

// InsertSong вставляет песню в рамках транзакции; id присваивает база
func (t *songTx) InsertSong(ctx context.Context, filename string, meta domain.Metadata) (domain.Song, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return domain.Song{}, err
	}
	q := t.repo.qb().Insert(t.repo.songs()).
		Columns("filename", "metadata").
		Values(filename, payload).
		Suffix("RETURNING " + songColumns)
	sqlStr, args, _ := q.ToSql()
	t.repo.logSQL("Tx.InsertSong", sqlStr, args)

	start := time.Now()
	s, err := scanSong(t.tx.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		t.repo.logger.Printf("Tx.InsertSong error after %s: %v", time.Since(start), err)
		return domain.Song{}, err
	}
	t.repo.logger.Printf("Tx.InsertSong ok in %s id=%d name=%q", time.Since(start), s.ID, s.Filename)
	return s, nil
}

// DeleteSong удаляет песню в рамках транзакции; ровно одна строка
func (t *songTx) DeleteSong(ctx context.Context, id domain.SongID) error {
	q := t.repo.qb().Delete(t.repo.songs()).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	t.repo.logSQL("Tx.DeleteSong", sqlStr, args)

	start := time.Now()
	tag, err := t.tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		t.repo.logger.Printf("Tx.DeleteSong exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() != 1 {
		t.repo.logger.Printf("Tx.DeleteSong unexpected rows=%d id=%d", tag.RowsAffected(), id)
		return errNoRows("song not found")
	}
	t.repo.logger.Printf("Tx.DeleteSong ok in %s id=%d", time.Since(start), id)
	return nil
}
