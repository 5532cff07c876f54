package catalog

import (
	"context"
	"fmt"

	"github.com/yhafez/music-library-cloud-backup/internal/domain"
)

// runCoordinated — координатор согласованной пары "транзакция каталога +
// вызов объектного хранилища". Порядок жёсткий:
//
//  1. begin на выделенном соединении; соединение освобождается на любом пути
//  2. catalogOp внутри транзакции; ошибка → rollback, database_failure,
//     objectOp не вызывается
//  3. objectOp; ошибка → rollback, object_store_failure — каталожная
//     сторона гарантированно не закоммичена
//  4. commit; ошибка → best-effort компенсация objectOp (если она есть)
//     и transaction_failure. Непрошедшая компенсация оставляет
//     расхождение — его добирает Sync.
//
// Начатая пара доводится до конца даже если вызывающий ушёл:
// отмена снаружи не должна оставлять каталог без rollback/commit.
func (s *Service) runCoordinated(
	ctx context.Context,
	op string,
	catalogOp func(ctx context.Context, tx domain.CatalogTx) error,
	objectOp func(ctx context.Context) error,
	compensate func(ctx context.Context) error,
) error {
	ctx = context.WithoutCancel(ctx)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w: %w", op, domain.ErrDatabase, err)
	}
	// страховка: после commit это no-op, соединение освобождается ровно раз
	defer func() { _ = tx.Rollback(ctx) }()

	if err := catalogOp(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.log.Printf("%s: rollback after catalog failure: %v", op, rbErr)
		}
		return fmt.Errorf("%s: catalog: %w: %w", op, domain.ErrDatabase, err)
	}

	if err := objectOp(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.log.Printf("%s: rollback after object-store failure: %v", op, rbErr)
		}
		return fmt.Errorf("%s: object store: %w: %w", op, domain.ErrObjectStore, err)
	}

	if err := tx.Commit(ctx); err != nil {
		if compensate != nil {
			if cErr := compensate(ctx); cErr != nil {
				s.log.Printf("%s: compensation failed, stores diverged until next sync: %v", op, cErr)
				return fmt.Errorf("%s: commit and compensation: %w: %w", op, domain.ErrTransaction, err)
			}
		}
		return fmt.Errorf("%s: commit: %w: %w", op, domain.ErrTransaction, err)
	}
	return nil
}
