package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlotRepository persists availability slots. Implementations must return
// ErrSlotNotFound when a slot id does not exist.
type SlotRepository interface {
	Create(ctx context.Context, sl *AvailabilitySlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*AvailabilitySlot, error)
	ListByProviderDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*AvailabilitySlot, error)
	// MarkBooked flips is_booked to true only if it is currently false.
	// It reports whether the flip happened, so concurrent bookings of the
	// same slot resolve to exactly one winner.
	MarkBooked(ctx context.Context, id uuid.UUID) (bool, error)
	MarkFree(ctx context.Context, id uuid.UUID) error
	HasOverlap(ctx context.Context, providerID uuid.UUID, date time.Time, slotStart, slotEnd string) (bool, error)
}

// AppointmentRepository persists appointments. Implementations must return
// ErrAppointmentNotFound when an appointment id does not exist.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	GetDetailByID(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error)
	ListDetailsByUser(ctx context.Context, userID uuid.UUID, f ListFilter) ([]*AppointmentDetail, error)
}

// TxRunner executes fn atomically. Repository calls made with the context
// passed to fn share one transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers best-effort appointment emails. Implementations log
// failures instead of returning them; delivery must never affect the booking
// outcome.
type Notifier interface {
	AppointmentCreated(ctx context.Context, d *AppointmentDetail)
	AppointmentCancelled(ctx context.Context, d *AppointmentDetail)
	AppointmentRescheduled(ctx context.Context, d *AppointmentDetail)
	AppointmentUpdated(ctx context.Context, d *AppointmentDetail)
}
