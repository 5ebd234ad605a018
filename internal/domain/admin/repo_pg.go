package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const deptCols = `id, name, description, is_active, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, apperror.FromStorage("department", err)
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Department) error {
	d.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO department (id, name, description, is_active)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Description, d.IsActive).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	return apperror.FromStorage("department", err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+deptCols+` FROM department WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Department) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE department SET name=$2, description=$3, is_active=$4, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Description, d.IsActive)
	if err != nil {
		return apperror.FromStorage("department", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("department", d.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM department WHERE id = $1`, id)
	if err != nil {
		return apperror.FromStorage("department", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("department", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM department`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+deptCols+` FROM department ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Department
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

func (r *repoPG) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM department WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM department WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	return exists, err
}
