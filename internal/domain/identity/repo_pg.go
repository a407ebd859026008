package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

const userCols = `id, legacy_id, name, email, role, specialization, created_at, updated_at`

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.LegacyID, &u.Name, &u.Email, &u.Role, &u.Specialization,
		&u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO portal_user (id, legacy_id, name, email, role, specialization)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.LegacyID, u.Name, u.Email, u.Role, u.Specialization)
	return err
}

func (r *userRepoPG) GetByID(ctx context.Context, id string) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userCols+` FROM portal_user WHERE id = $1 OR legacy_id = $1`, id))
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE portal_user SET name=$2, email=$3, role=$4, specialization=$5, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Role, u.Specialization)
	return err
}

func (r *userRepoPG) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM portal_user WHERE id = $1`, id)
	return err
}

func (r *userRepoPG) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portal_user`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM portal_user ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *userRepoPG) ListByRole(ctx context.Context, role string, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portal_user WHERE role = $1`, role).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM portal_user WHERE role = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *userRepoPG) ListDoctors(ctx context.Context, specialization string, limit, offset int) ([]*User, int, error) {
	if specialization == "" {
		return r.ListByRole(ctx, "doctor", limit, offset)
	}
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM portal_user WHERE role = 'doctor' AND specialization = $1`,
		specialization).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM portal_user WHERE role = 'doctor' AND specialization = $1
		ORDER BY name LIMIT $2 OFFSET $3`,
		specialization, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *userRepoPG) CountByRole(ctx context.Context, role string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portal_user WHERE role = $1`, role).Scan(&total)
	return total, err
}

func (r *userRepoPG) collect(rows pgx.Rows, total int) ([]*User, int, error) {
	var items []*User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}
