package registrations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hotend/giveaway-backend/internal/models"
)

const uniqueViolation = "23505"

// Repository handles registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail returns the registration for an email, or (nil, nil) when none exists.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Registration, error) {
	const q = `SELECT id, email, name, code, newsletter, created_at FROM registrations WHERE email = $1`
	var reg models.Registration
	err := r.pool.QueryRow(ctx, q, email).
		Scan(&reg.ID, &reg.Email, &reg.Name, &reg.Code, &reg.Newsletter, &reg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Insert stores a new registration. A duplicate email is reported as
// AlreadyExists with a nil error; the caller re-reads the existing row.
func (r *Repository) Insert(ctx context.Context, reg *models.Registration) (InsertResult, error) {
	const q = `INSERT INTO registrations (id, email, name, code, newsletter)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, reg.Email, reg.Name, reg.Code, reg.Newsletter).
		Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return AlreadyExists, nil
		}
		return Inserted, err
	}
	return Inserted, nil
}

// Count returns the total number of registrations.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n)
	return n, err
}

// ListOrdered returns every registration ordered by creation time ascending,
// the order the drawing tool expects.
func (r *Repository) ListOrdered(ctx context.Context) ([]models.Registration, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, name, code, newsletter, created_at FROM registrations ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registration
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.Email, &reg.Name, &reg.Code, &reg.Newsletter, &reg.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}
