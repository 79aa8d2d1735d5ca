package cartline

import (
	"context"
	"errors"
	"io"
	"log"

	"glowcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListForUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT cl.id::text, cl.user_id::text, cl.product_id::text, cl.quantity, cl.created_at,
       p.title, p.price, COALESCE(p.image_url, '')
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.user_id = $1
ORDER BY cl.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("cartline repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("cartline repo: list rows user_id=%s error=%v", userID, err)
		return nil, err
	}
	return items, nil
}

// scanCartItem maps a joined row onto the typed cart view. The join shape
// stays private to this package.
func scanCartItem(rows pgx.Rows) (domain.CartItem, error) {
	var item domain.CartItem
	err := rows.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.Title,
		&item.Price,
		&item.ImageURL,
	)
	return item, err
}

func (r *postgresRepo) AddOne(ctx context.Context, userID, productID string) error {
	return r.adjust(ctx, userID, productID, true)
}

func (r *postgresRepo) IncrementOne(ctx context.Context, userID, productID string) error {
	return r.adjust(ctx, userID, productID, false)
}

// adjust performs the +1 mutation. The current quantity is read with a row
// lock in the same transaction as the write.
func (r *postgresRepo) adjust(ctx context.Context, userID, productID string, createMissing bool) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var qty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_lines
WHERE user_id = $1 AND product_id = $2
FOR UPDATE
`, userID, productID).Scan(&lineID, &qty)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if !createMissing {
			return domain.ErrLineNotFound
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (user_id, product_id, quantity)
VALUES ($1, $2, 1)
`, userID, productID); err != nil {
			r.logger.Printf("cartline repo: insert user_id=%s product_id=%s error=%v", userID, productID, err)
			return err
		}
	case err != nil:
		r.logger.Printf("cartline repo: read user_id=%s product_id=%s error=%v", userID, productID, err)
		return err
	default:
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines SET quantity = $2 WHERE id = $1
`, lineID, qty+1); err != nil {
			r.logger.Printf("cartline repo: update id=%s error=%v", lineID, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) DecrementOne(ctx context.Context, userID, productID string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var lineID string
	var qty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM cart_lines
WHERE user_id = $1 AND product_id = $2
FOR UPDATE
`, userID, productID).Scan(&lineID, &qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrLineNotFound
	}
	if err != nil {
		r.logger.Printf("cartline repo: read user_id=%s product_id=%s error=%v", userID, productID, err)
		return false, err
	}

	removed := false
	if qty <= 1 {
		// Quantity zero is never persisted; the row goes away instead.
		if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1`, lineID); err != nil {
			r.logger.Printf("cartline repo: delete id=%s error=%v", lineID, err)
			return false, err
		}
		removed = true
	} else {
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines SET quantity = $2 WHERE id = $1
`, lineID, qty-1); err != nil {
			r.logger.Printf("cartline repo: update id=%s error=%v", lineID, err)
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return removed, nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE id = $1 AND user_id = $2
`, lineID, userID)
	if err != nil {
		r.logger.Printf("cartline repo: delete id=%s user_id=%s error=%v", lineID, userID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Either no such line or it belongs to someone else; both must
		// fail rather than silently succeed.
		return domain.ErrLineNotFound
	}
	return nil
}
