package patient

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

const patientCols = `id, first_name, last_name, national_id, birth_date, gender,
	phone, email, address, blood_type, allergies, chronic_conditions,
	insurance_provider, insurance_number, emergency_contact_name, emergency_contact_phone,
	primary_doctor_id, department_id, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.NationalID, &p.BirthDate, &p.Gender,
		&p.Phone, &p.Email, &p.Address, &p.BloodType, &p.Allergies, &p.ChronicConditions,
		&p.InsuranceProvider, &p.InsuranceNumber, &p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.PrimaryDoctorID, &p.DepartmentID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, apperror.FromStorage("patient", err)
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (id, first_name, last_name, national_id, birth_date, gender,
			phone, email, address, blood_type, allergies, chronic_conditions,
			insurance_provider, insurance_number, emergency_contact_name, emergency_contact_phone,
			primary_doctor_id, department_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING created_at, updated_at`,
		p.ID, p.FirstName, p.LastName, p.NationalID, p.BirthDate, p.Gender,
		p.Phone, p.Email, p.Address, p.BloodType, p.Allergies, p.ChronicConditions,
		p.InsuranceProvider, p.InsuranceNumber, p.EmergencyContactName, p.EmergencyContactPhone,
		p.PrimaryDoctorID, p.DepartmentID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return apperror.FromStorage("patient", err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scan(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, national_id=$4, birth_date=$5, gender=$6,
			phone=$7, email=$8, address=$9, blood_type=$10, allergies=$11, chronic_conditions=$12,
			insurance_provider=$13, insurance_number=$14, emergency_contact_name=$15,
			emergency_contact_phone=$16, primary_doctor_id=$17, department_id=$18, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.NationalID, p.BirthDate, p.Gender,
		p.Phone, p.Email, p.Address, p.BloodType, p.Allergies, p.ChronicConditions,
		p.InsuranceProvider, p.InsuranceNumber, p.EmergencyContactName, p.EmergencyContactPhone,
		p.PrimaryDoctorID, p.DepartmentID)
	if err != nil {
		return apperror.FromStorage("patient", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("patient", p.ID)
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return apperror.FromStorage("patient", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("patient", id)
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *repoPG) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patient WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patient WHERE national_id = $1)`, nationalID).Scan(&exists)
	return exists, err
}
