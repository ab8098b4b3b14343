package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const hospitalCols = `id, name, phone, address_line, city, state, created_at`

func (r *repoPG) ListHospitals(ctx context.Context) ([]*Hospital, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+hospitalCols+` FROM hospitals ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Phone, &h.AddressLine, &h.City,
			&h.State, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

const doctorDetailCols = `d.id, d.hospital_id, d.full_name, d.specialty, d.bio, d.created_at,
	h.name AS hospital_name, h.city AS hospital_city`

func scanDoctorDetail(row pgx.Row) (*DoctorDetail, error) {
	var d DoctorDetail
	err := row.Scan(&d.ID, &d.HospitalID, &d.FullName, &d.Specialty, &d.Bio,
		&d.CreatedAt, &d.HospitalName, &d.HospitalCity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	return &d, err
}

func (r *repoPG) ListDoctors(ctx context.Context) ([]*DoctorDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorDetailCols+`
		FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		ORDER BY d.full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*DoctorDetail
	for rows.Next() {
		d, err := scanDoctorDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repoPG) GetDoctor(ctx context.Context, id uuid.UUID) (*DoctorDetail, error) {
	return scanDoctorDetail(r.pool.QueryRow(ctx, `
		SELECT `+doctorDetailCols+`
		FROM doctors d
		JOIN hospitals h ON h.id = d.hospital_id
		WHERE d.id = $1`, id))
}
