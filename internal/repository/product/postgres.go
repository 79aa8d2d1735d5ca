package product

import (
	"context"
	"errors"
	"io"
	"log"

	"glowcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, title, price, COALESCE(image_url, ''), COALESCE(gallery, '[]'::jsonb), COALESCE(intro, ''), COALESCE(how_to_use, ''), COALESCE(shade, ''), COALESCE(finish, ''), COALESCE(size, ''), COALESCE(color, ''), created_at`

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q)
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE title ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
`
	return r.queryProducts(ctx, q, query)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Title, &p.Price, &p.ImageURL, &p.Gallery, &p.Intro, &p.HowToUse,
		&p.Shade, &p.Finish, &p.Size, &p.Color, &p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (title, price, image_url, gallery, intro, how_to_use, shade, finish, size, color)
VALUES ($1, $2, $3, COALESCE($4, '[]'::jsonb), $5, $6, $7, $8, $9, $10)
RETURNING id::text, created_at
`
	res := p
	if err := r.pool.QueryRow(ctx, q,
		p.Title, p.Price, p.ImageURL, p.Gallery, p.Intro, p.HowToUse,
		p.Shade, p.Finish, p.Size, p.Color,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		r.logger.Printf("product repo: create title=%q error=%v", p.Title, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s title=%q", res.ID, res.Title)
	return &res, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET title = $2, price = $3, image_url = $4, gallery = COALESCE($5, '[]'::jsonb),
    intro = $6, how_to_use = $7, shade = $8, finish = $9, size = $10, color = $11
WHERE id = $1
RETURNING created_at
`
	res := p
	if err := r.pool.QueryRow(ctx, q,
		p.ID, p.Title, p.Price, p.ImageURL, p.Gallery, p.Intro, p.HowToUse,
		p.Shade, p.Finish, p.Size, p.Color,
	).Scan(&res.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &res, nil
}

// Upsert inserts a product with a caller-provided id, updating it in place
// when the id already exists. Rows without an id fall back to Create.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return r.Create(ctx, p)
	}
	const q = `
INSERT INTO products (id, title, price, image_url, gallery, intro, how_to_use, shade, finish, size, color)
VALUES ($1, $2, $3, $4, COALESCE($5, '[]'::jsonb), $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE
SET title = EXCLUDED.title,
    price = EXCLUDED.price,
    image_url = EXCLUDED.image_url,
    gallery = EXCLUDED.gallery,
    intro = EXCLUDED.intro,
    how_to_use = EXCLUDED.how_to_use,
    shade = EXCLUDED.shade,
    finish = EXCLUDED.finish,
    size = EXCLUDED.size,
    color = EXCLUDED.color
RETURNING id::text, created_at
`
	res := p
	if err := r.pool.QueryRow(ctx, q,
		p.ID, p.Title, p.Price, p.ImageURL, p.Gallery, p.Intro, p.HowToUse,
		p.Shade, p.Finish, p.Size, p.Color,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		r.logger.Printf("product repo: upsert id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Price, &p.ImageURL, &p.Gallery, &p.Intro, &p.HowToUse,
			&p.Shade, &p.Finish, &p.Size, &p.Color, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: rows error=%v", err)
		return nil, err
	}
	return result, nil
}
