package staff

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

const doctorCols = `id, user_id, department_id, license_number, specialization,
	phone, email, room_number, working_hours, biography, is_active, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.DepartmentID, &d.LicenseNumber, &d.Specialization,
		&d.Phone, &d.Email, &d.RoomNumber, &d.WorkingHours, &d.Biography,
		&d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, apperror.FromStorage("doctor", err)
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor (id, user_id, department_id, license_number, specialization,
			phone, email, room_number, working_hours, biography, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at`,
		d.ID, d.UserID, d.DepartmentID, d.LicenseNumber, d.Specialization,
		d.Phone, d.Email, d.RoomNumber, d.WorkingHours, d.Biography, d.IsActive).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	return apperror.FromStorage("doctor", err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET department_id=$2, specialization=$3, phone=$4, email=$5,
			room_number=$6, working_hours=$7, biography=$8, is_active=$9, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.DepartmentID, d.Specialization, d.Phone, d.Email,
		d.RoomNumber, d.WorkingHours, d.Biography, d.IsActive)
	if err != nil {
		return apperror.FromStorage("doctor", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("doctor", d.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return apperror.FromStorage("doctor", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("doctor", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
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
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM doctor WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) ExistsByLicense(ctx context.Context, license string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM doctor WHERE license_number = $1)`, license).Scan(&exists)
	return exists, err
}
