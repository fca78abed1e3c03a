package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"applesapi/internal/model"
	"applesapi/internal/repository"
)

// ApplePostgres is a PostgreSQL implementation of repository.AppleRepository.
// Rows are mapped onto model.Apple by sqlx using the struct's db tags.
type ApplePostgres struct {
	db *sqlx.DB
}

// NewApplePostgres creates a new ApplePostgres repository over an open connection pool.
func NewApplePostgres(db *sql.DB) *ApplePostgres {
	return &ApplePostgres{db: sqlx.NewDb(db, "pgx")}
}

var _ repository.AppleRepository = (*ApplePostgres)(nil)

// FindByID fetches a single apple by its ID.
func (r *ApplePostgres) FindByID(ctx context.Context, id string) (*model.Apple, error) {
	const q = `SELECT id, name FROM apples WHERE id = $1`
	var a model.Apple
	if err := r.db.GetContext(ctx, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find apple %s", id)
	}
	return &a, nil
}

// ExistsByID reports whether a row with the given id exists.
func (r *ApplePostgres) ExistsByID(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM apples WHERE id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, id); err != nil {
		return false, errors.Wrapf(err, "check apple %s", id)
	}
	return exists, nil
}

// Insert adds a new row. A duplicate id yields no returned row and maps to ErrAlreadyExists.
func (r *ApplePostgres) Insert(ctx context.Context, apple *model.Apple) (*model.Apple, error) {
	const q = `
		INSERT INTO apples (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
		RETURNING id, name
	`
	var out model.Apple
	if err := r.db.GetContext(ctx, &out, q, apple.ID, apple.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, errors.Wrapf(err, "insert apple %s", apple.ID)
	}
	return &out, nil
}

// Save upserts the apple row and returns what the database stored.
func (r *ApplePostgres) Save(ctx context.Context, apple *model.Apple) (*model.Apple, error) {
	const q = `
		INSERT INTO apples (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`
	var out model.Apple
	if err := r.db.GetContext(ctx, &out, q, apple.ID, apple.Name); err != nil {
		return nil, errors.Wrapf(err, "save apple %s", apple.ID)
	}
	return &out, nil
}

// DeleteByID removes an apple by ID. It does not return an error if the row does not exist.
func (r *ApplePostgres) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM apples WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return errors.Wrapf(err, "delete apple %s", id)
	}
	return nil
}

// List returns apples using LIMIT/OFFSET pagination and a total count.
func (r *ApplePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Apple], error) {
	const qCount = `SELECT COUNT(*) FROM apples`
	var total int
	if err := r.db.GetContext(ctx, &total, qCount); err != nil {
		return nil, errors.Wrap(err, "count apples")
	}

	const qList = `
		SELECT id, name
		FROM apples
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	items := make([]model.Apple, 0)
	if err := r.db.SelectContext(ctx, &items, qList, pq.Limit, pq.Offset); err != nil {
		return nil, errors.Wrap(err, "list apples")
	}

	return &repository.PageResult[model.Apple]{
		Items: items,
		Total: total,
	}, nil
}
