package records

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

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// =========== MedicalRecord Repository ===========

type medicalRecordRepoPG struct{ pool *pgxpool.Pool }

func NewMedicalRecordRepoPG(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepoPG{pool: pool}
}

const recordCols = `id, patient_id, doctor_id, record_type, description, attachments, created_at, updated_at`

func (r *medicalRecordRepoPG) scan(row pgx.Row) (*MedicalRecord, error) {
	var m MedicalRecord
	err := row.Scan(&m.ID, &m.PatientID, &m.DoctorID, &m.RecordType,
		&m.Description, &m.Attachments, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, apperror.FromStorage("medical record", err)
	}
	return &m, nil
}

func (r *medicalRecordRepoPG) Create(ctx context.Context, m *MedicalRecord) error {
	m.ID = uuid.New()
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO medical_record (id, patient_id, doctor_id, record_type, description, attachments)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		m.ID, m.PatientID, m.DoctorID, m.RecordType, m.Description, m.Attachments).
		Scan(&m.CreatedAt, &m.UpdatedAt)
	return apperror.FromStorage("medical record", err)
}

func (r *medicalRecordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return r.scan(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+recordCols+` FROM medical_record WHERE id = $1`, id))
}

func (r *medicalRecordRepoPG) Update(ctx context.Context, m *MedicalRecord) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE medical_record SET record_type=$2, description=$3, attachments=$4, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.RecordType, m.Description, m.Attachments)
	if err != nil {
		return apperror.FromStorage("medical record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("medical record", m.ID)
	}
	return nil
}

func (r *medicalRecordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM medical_record WHERE id = $1`, id)
	if err != nil {
		return apperror.FromStorage("medical record", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("medical record", id)
	}
	return nil
}

func (r *medicalRecordRepoPG) List(ctx context.Context, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM medical_record`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+recordCols+` FROM medical_record ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *medicalRecordRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM medical_record WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+recordCols+` FROM medical_record WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

func (r *medicalRecordRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM medical_record WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, apperror.FromStorage("medical record", err)
	}
	return tag.RowsAffected(), nil
}

// =========== PatientVisit Repository ===========

type patientVisitRepoPG struct{ pool *pgxpool.Pool }

func NewPatientVisitRepoPG(pool *pgxpool.Pool) PatientVisitRepository {
	return &patientVisitRepoPG{pool: pool}
}

const visitCols = `id, patient_id, doctor_id, visit_date, symptoms, diagnosis, treatment_plan, notes, created_at, updated_at`

func (r *patientVisitRepoPG) scan(row pgx.Row) (*PatientVisit, error) {
	var v PatientVisit
	err := row.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.VisitDate,
		&v.Symptoms, &v.Diagnosis, &v.TreatmentPlan, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, apperror.FromStorage("patient visit", err)
	}
	return &v, nil
}

func (r *patientVisitRepoPG) Create(ctx context.Context, v *PatientVisit) error {
	v.ID = uuid.New()
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO patient_visit (id, patient_id, doctor_id, visit_date, symptoms, diagnosis, treatment_plan, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		v.ID, v.PatientID, v.DoctorID, v.VisitDate, v.Symptoms, v.Diagnosis, v.TreatmentPlan, v.Notes).
		Scan(&v.CreatedAt, &v.UpdatedAt)
	return apperror.FromStorage("patient visit", err)
}

func (r *patientVisitRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PatientVisit, error) {
	return r.scan(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+visitCols+` FROM patient_visit WHERE id = $1`, id))
}

func (r *patientVisitRepoPG) Update(ctx context.Context, v *PatientVisit) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE patient_visit SET visit_date=$2, symptoms=$3, diagnosis=$4, treatment_plan=$5, notes=$6, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.VisitDate, v.Symptoms, v.Diagnosis, v.TreatmentPlan, v.Notes)
	if err != nil {
		return apperror.FromStorage("patient visit", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("patient visit", v.ID)
	}
	return nil
}

func (r *patientVisitRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM patient_visit WHERE id = $1`, id)
	if err != nil {
		return apperror.FromStorage("patient visit", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("patient visit", id)
	}
	return nil
}

func (r *patientVisitRepoPG) List(ctx context.Context, limit, offset int) ([]*PatientVisit, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM patient_visit`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+visitCols+` FROM patient_visit ORDER BY visit_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PatientVisit
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

func (r *patientVisitRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientVisit, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM patient_visit WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+visitCols+` FROM patient_visit WHERE patient_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PatientVisit
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, nil
}

func (r *patientVisitRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM patient_visit WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, apperror.FromStorage("patient visit", err)
	}
	return tag.RowsAffected(), nil
}

// =========== Prescription Repository ===========

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

const prescriptionCols = `id, patient_id, doctor_id, medication_name, dosage, frequency, duration, instructions, issued_at, created_at, updated_at`

func (r *prescriptionRepoPG) scan(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.DoctorID, &p.MedicationName,
		&p.Dosage, &p.Frequency, &p.Duration, &p.Instructions, &p.IssuedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, apperror.FromStorage("prescription", err)
	}
	return &p, nil
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO prescription (id, patient_id, doctor_id, medication_name, dosage, frequency, duration, instructions, issued_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		p.ID, p.PatientID, p.DoctorID, p.MedicationName, p.Dosage, p.Frequency, p.Duration, p.Instructions, p.IssuedAt).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	return apperror.FromStorage("prescription", err)
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return r.scan(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+prescriptionCols+` FROM prescription WHERE id = $1`, id))
}

func (r *prescriptionRepoPG) Update(ctx context.Context, p *Prescription) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE prescription SET medication_name=$2, dosage=$3, frequency=$4, duration=$5, instructions=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.MedicationName, p.Dosage, p.Frequency, p.Duration, p.Instructions)
	if err != nil {
		return apperror.FromStorage("prescription", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("prescription", p.ID)
	}
	return nil
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM prescription WHERE id = $1`, id)
	if err != nil {
		return apperror.FromStorage("prescription", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("prescription", id)
	}
	return nil
}

func (r *prescriptionRepoPG) List(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM prescription`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+prescriptionCols+` FROM prescription ORDER BY issued_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *prescriptionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM prescription WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+prescriptionCols+` FROM prescription WHERE patient_id = $1 ORDER BY issued_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *prescriptionRepoPG) DeleteByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM prescription WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, apperror.FromStorage("prescription", err)
	}
	return tag.RowsAffected(), nil
}
