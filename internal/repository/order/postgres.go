package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"glowcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const orderColumns = `id::text, user_id::text, items, subtotal::text, shipping::text, tax::text, total_amount::text, status, created_at`

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

func (r *postgresRepo) CreateFromCart(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}

	res := o
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (user_id, items, subtotal, shipping, tax, total_amount, status)
VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6::numeric, $7)
RETURNING id::text, created_at
`, o.UserID, items, o.Subtotal.String(), o.Shipping.String(), o.Tax.String(), o.TotalAmount.String(), o.Status).Scan(&res.ID, &res.CreatedAt); err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, o.UserID); err != nil {
		r.logger.Printf("order repo: clear cart user_id=%s error=%v", o.UserID, err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user_id=%s total=%s", res.ID, res.UserID, res.TotalAmount)
	return &res, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func scanOrder(rows pgx.Rows) (domain.Order, error) {
	var (
		o                              domain.Order
		rawItems                       []byte
		subtotal, shipping, tax, total string
	)
	if err := rows.Scan(&o.ID, &o.UserID, &rawItems, &subtotal, &shipping, &tax, &total, &o.Status, &o.CreatedAt); err != nil {
		return domain.Order{}, err
	}
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &o.Items); err != nil {
			return domain.Order{}, err
		}
	}
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return domain.Order{}, errors.New("order repo: bad subtotal " + subtotal)
	}
	if o.Shipping, err = decimal.NewFromString(shipping); err != nil {
		return domain.Order{}, errors.New("order repo: bad shipping " + shipping)
	}
	if o.Tax, err = decimal.NewFromString(tax); err != nil {
		return domain.Order{}, errors.New("order repo: bad tax " + tax)
	}
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return domain.Order{}, errors.New("order repo: bad total " + total)
	}
	return o, nil
}
