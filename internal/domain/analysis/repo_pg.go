package analysis

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type analysisRepoPG struct{ pool *pgxpool.Pool }

func NewAnalysisRepoPG(pool *pgxpool.Pool) Repository {
	return &analysisRepoPG{pool: pool}
}

const analysisCols = `id, patient_id, kind, summary, report_url, created_at, updated_at`

func (r *analysisRepoPG) scanAnalysis(row pgx.Row) (*Analysis, error) {
	var a Analysis
	err := row.Scan(&a.ID, &a.PatientID, &a.Kind, &a.Summary, &a.ReportURL,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *analysisRepoPG) Create(ctx context.Context, a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analysis (id, patient_id, kind, summary, report_url)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.PatientID, a.Kind, a.Summary, a.ReportURL)
	return err
}

func (r *analysisRepoPG) GetByID(ctx context.Context, id string) (*Analysis, error) {
	return r.scanAnalysis(r.pool.QueryRow(ctx, `
		SELECT `+analysisCols+` FROM analysis WHERE id = $1`, id))
}

func (r *analysisRepoPG) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Analysis, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analysis WHERE patient_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+analysisCols+` FROM analysis WHERE patient_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Analysis
	for rows.Next() {
		a, err := r.scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *analysisRepoPG) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM analysis WHERE id = $1`, id)
	return err
}
