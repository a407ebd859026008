package appointment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) Repository {
	return &recordRepoPG{pool: pool}
}

// The owner columns mirror the legacy payload shapes: patient_ref and
// user_ref hold the polymorphic forms verbatim as JSONB, patient_id and
// user_id the plain-string forms.
const recordCols = `id, patient_ref, patient_id, user_ref, user_id, doctor_id,
	doctor_name, doctor_specialization, appointment_date, appointment_time,
	status, reason, symptoms, created_at, updated_at`

func (r *recordRepoPG) scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var patientRef, userRef []byte
	var doctorName, doctorSpec *string
	err := row.Scan(&rec.ID, &patientRef, &rec.PatientID, &userRef, &rec.UserID, &rec.DoctorID,
		&doctorName, &doctorSpec, &rec.AppointmentDate, &rec.AppointmentTime,
		&rec.Status, &rec.Reason, &rec.Symptoms, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(patientRef) > 0 {
		if err := json.Unmarshal(patientRef, &rec.Patient); err != nil {
			return nil, fmt.Errorf("decode patient ref: %w", err)
		}
	}
	if len(userRef) > 0 {
		if err := json.Unmarshal(userRef, &rec.User); err != nil {
			return nil, fmt.Errorf("decode user ref: %w", err)
		}
	}
	if doctorName != nil {
		rec.Doctor = &DoctorInfo{Name: *doctorName}
		if doctorSpec != nil {
			rec.Doctor.Specialization = *doctorSpec
		}
	}
	return &rec, nil
}

func (r *recordRepoPG) ownerRefJSON(ref OwnerRef) (interface{}, error) {
	if ref.Missing() {
		return nil, nil
	}
	return json.Marshal(ref)
}

func (r *recordRepoPG) Create(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	patientRef, err := r.ownerRefJSON(rec.Patient)
	if err != nil {
		return err
	}
	userRef, err := r.ownerRefJSON(rec.User)
	if err != nil {
		return err
	}
	var doctorName, doctorSpec *string
	if rec.Doctor != nil {
		doctorName = &rec.Doctor.Name
		if rec.Doctor.Specialization != "" {
			doctorSpec = &rec.Doctor.Specialization
		}
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO appointment (id, patient_ref, patient_id, user_ref, user_id, doctor_id,
			doctor_name, doctor_specialization, appointment_date, appointment_time,
			status, reason, symptoms)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		rec.ID, patientRef, rec.PatientID, userRef, rec.UserID, rec.DoctorID,
		doctorName, doctorSpec, rec.AppointmentDate, rec.AppointmentTime,
		rec.Status, rec.Reason, rec.Symptoms)
	return err
}

func (r *recordRepoPG) GetByID(ctx context.Context, id string) (*Record, error) {
	return r.scanRecord(r.pool.QueryRow(ctx, `
		SELECT `+recordCols+` FROM appointment WHERE id = $1`, id))
}

func (r *recordRepoPG) Update(ctx context.Context, rec *Record) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointment SET appointment_date=$2, appointment_time=$3, status=$4,
			reason=$5, symptoms=$6, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.AppointmentDate, rec.AppointmentTime, rec.Status,
		rec.Reason, rec.Symptoms)
	return err
}

func (r *recordRepoPG) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *recordRepoPG) ListAll(ctx context.Context) ([]*Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM appointment ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

func (r *recordRepoPG) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Record, int, error) {
	// COALESCE mirrors OwnerID's fallback chain for the plain columns; the
	// JSONB forms are covered by the ->> extractions.
	const ownerMatch = `COALESCE(patient_ref->>'_id',
		CASE WHEN jsonb_typeof(patient_ref) = 'string' THEN patient_ref #>> '{}' END,
		patient_id,
		user_ref->>'_id',
		CASE WHEN jsonb_typeof(user_ref) = 'string' THEN user_ref #>> '{}' END,
		user_id) = $1`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE `+ownerMatch, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordCols+` FROM appointment WHERE `+ownerMatch+`
		ORDER BY created_at LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, rows.Err()
}

func (r *recordRepoPG) MonthlyTrends(ctx context.Context, ownerID string, months int) ([]Trend, error) {
	const ownerMatch = `COALESCE(patient_ref->>'_id',
		CASE WHEN jsonb_typeof(patient_ref) = 'string' THEN patient_ref #>> '{}' END,
		patient_id,
		user_ref->>'_id',
		CASE WHEN jsonb_typeof(user_ref) = 'string' THEN user_ref #>> '{}' END,
		user_id) = $1`

	rows, err := r.pool.Query(ctx, `
		SELECT substr(appointment_date, 1, 7) AS month, COUNT(*)
		FROM appointment WHERE `+ownerMatch+`
		GROUP BY month ORDER BY month DESC LIMIT $2`, ownerID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []Trend
	for rows.Next() {
		var t Trend
		if err := rows.Scan(&t.Month, &t.Count); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}
