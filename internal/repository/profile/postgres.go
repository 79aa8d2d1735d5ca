package profile

import (
	"context"
	"errors"
	"io"
	"log"

	"glowcart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

func (r *postgresRepo) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	const q = `
INSERT INTO profiles (email, full_name, password_hash)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`
	res := p
	if err := r.pool.QueryRow(ctx, q, p.Email, p.FullName, p.PasswordHash).Scan(&res.ID, &res.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("profile repo: create email=%s error=%v", p.Email, err)
		return nil, err
	}
	r.logger.Printf("profile repo: created id=%s email=%s", res.ID, res.Email)
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `
SELECT id::text, email, COALESCE(full_name, ''), password_hash, created_at
FROM profiles
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const q = `
SELECT id::text, email, COALESCE(full_name, ''), password_hash, created_at
FROM profiles
WHERE email = $1
`
	return r.fetch(ctx, q, email)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Profile, error) {
	const q = `
SELECT id::text, email, COALESCE(full_name, ''), password_hash, created_at
FROM profiles
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("profile repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Profile, error) {
	const q = `
UPDATE profiles
SET full_name = COALESCE($2, full_name)
WHERE id = $1
RETURNING id::text, email, COALESCE(full_name, ''), password_hash, created_at
`
	var p domain.Profile
	if err := r.pool.QueryRow(ctx, q, id, in.FullName).Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("profile repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("profile repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg interface{}) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.pool.QueryRow(ctx, q, arg).Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("profile repo: fetch error=%v", err)
		return nil, err
	}
	return &p, nil
}
