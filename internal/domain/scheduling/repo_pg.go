package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicmate/clinicmate/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Slot Repository ===========

type slotRepoPG struct{ pool *pgxpool.Pool }

func NewSlotRepoPG(pool *pgxpool.Pool) SlotRepository { return &slotRepoPG{pool: pool} }

func (r *slotRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const slotCols = `id, provider_id, date, slot_start, slot_end, is_booked, created_at, updated_at`

func (r *slotRepoPG) scanSlot(row pgx.Row) (*AvailabilitySlot, error) {
	var sl AvailabilitySlot
	err := row.Scan(&sl.ID, &sl.ProviderID, &sl.Date, &sl.SlotStart, &sl.SlotEnd,
		&sl.IsBooked, &sl.CreatedAt, &sl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	return &sl, err
}

func (r *slotRepoPG) Create(ctx context.Context, sl *AvailabilitySlot) error {
	sl.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO availability_slots (id, provider_id, date, slot_start, slot_end, is_booked)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sl.ID, sl.ProviderID, sl.Date, sl.SlotStart, sl.SlotEnd, sl.IsBooked)
	return err
}

func (r *slotRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*AvailabilitySlot, error) {
	return r.scanSlot(r.conn(ctx).QueryRow(ctx,
		`SELECT `+slotCols+` FROM availability_slots WHERE id = $1`, id))
}

func (r *slotRepoPG) ListByProviderDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*AvailabilitySlot, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+slotCols+` FROM availability_slots
		WHERE provider_id = $1 AND date = $2
		ORDER BY slot_start`, providerID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AvailabilitySlot
	for rows.Next() {
		sl, err := r.scanSlot(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, sl)
	}
	return items, rows.Err()
}

func (r *slotRepoPG) MarkBooked(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE availability_slots SET is_booked = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_booked = FALSE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *slotRepoPG) MarkFree(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE availability_slots SET is_booked = FALSE, updated_at = NOW()
		WHERE id = $1`, id)
	return err
}

func (r *slotRepoPG) HasOverlap(ctx context.Context, providerID uuid.UUID, date time.Time, slotStart, slotEnd string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availability_slots
			WHERE provider_id = $1 AND date = $2
			  AND slot_start < $4 AND slot_end > $3
		)`, providerID, date, slotStart, slotEnd).Scan(&exists)
	return exists, err
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const apptCols = `id, user_id, provider_id, slot_id, status, visit_type, reason, created_at, updated_at`

func (r *appointmentRepoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.ProviderID, &a.SlotID, &a.Status,
		&a.VisitType, &a.Reason, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, user_id, provider_id, slot_id, status, visit_type, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.UserID, a.ProviderID, a.SlotID, a.Status, a.VisitType, a.Reason)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET provider_id=$2, slot_id=$3, status=$4, visit_type=$5,
			reason=$6, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.ProviderID, a.SlotID, a.Status, a.VisitType, a.Reason)
	return err
}

const detailCols = `a.id, a.user_id, a.provider_id, a.slot_id, a.status, a.visit_type, a.reason,
	a.created_at, a.updated_at,
	s.date, s.slot_start, s.slot_end,
	d.full_name, d.specialty,
	h.name, h.city,
	u.full_name, u.email`

const detailJoins = `FROM appointments a
	JOIN availability_slots s ON s.id = a.slot_id
	JOIN doctors d ON d.id = a.provider_id
	JOIN hospitals h ON h.id = d.hospital_id
	JOIN users u ON u.id = a.user_id`

func (r *appointmentRepoPG) scanDetail(row pgx.Row) (*AppointmentDetail, error) {
	var d AppointmentDetail
	err := row.Scan(&d.ID, &d.UserID, &d.ProviderID, &d.SlotID, &d.Status,
		&d.VisitType, &d.Reason, &d.CreatedAt, &d.UpdatedAt,
		&d.Date, &d.SlotStart, &d.SlotEnd,
		&d.DoctorName, &d.DoctorSpecialty,
		&d.HospitalName, &d.HospitalCity,
		&d.PatientName, &d.PatientEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	return &d, err
}

func (r *appointmentRepoPG) GetDetailByID(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	return r.scanDetail(r.conn(ctx).QueryRow(ctx,
		`SELECT `+detailCols+` `+detailJoins+` WHERE a.id = $1`, id))
}

// sortColumns whitelists sort keys to real columns. Anything else is rejected
// in the service before it gets here.
var sortColumns = map[string][]string{
	"date":       {"s.date", "s.slot_start"},
	"created_at": {"a.created_at"},
	"status":     {"a.status"},
}

func (r *appointmentRepoPG) ListDetailsByUser(ctx context.Context, userID uuid.UUID, f ListFilter) ([]*AppointmentDetail, error) {
	query := `SELECT ` + detailCols + ` ` + detailJoins + ` WHERE a.user_id = $1`
	args := []interface{}{userID}
	idx := 2

	if f.Status != "" {
		query += fmt.Sprintf(` AND a.status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}

	cols, ok := sortColumns[f.SortBy]
	if !ok {
		cols = sortColumns["date"]
	}
	dir := "ASC"
	if f.Order == "desc" {
		dir = "DESC"
	}
	ordered := make([]string, len(cols))
	for i, col := range cols {
		ordered[i] = col + " " + dir
	}
	query += ` ORDER BY ` + strings.Join(ordered, ", ")

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentDetail
	for rows.Next() {
		d, err := r.scanDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// =========== Tx Runner ===========

type pgTxRunner struct{ pool *pgxpool.Pool }

// NewTxRunner returns a TxRunner backed by the connection pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner { return &pgTxRunner{pool: pool} }

func (r *pgTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, r.pool, fn)
}
