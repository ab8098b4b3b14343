package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Appointments are never deleted; cancellation is a
// status transition so booking history survives.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Visit types offered by the booking flow.
const (
	VisitNewPatient     = "new_patient"
	VisitFollowUp       = "follow_up"
	VisitSickVisit      = "sick_visit"
	VisitAnnualPhysical = "annual_physical"
)

// AvailabilitySlot is a bookable time window for a provider on a given date.
// At most one non-cancelled appointment may reference a slot, enforced by the
// conditional is_booked flip performed inside the booking transaction.
type AvailabilitySlot struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProviderID uuid.UUID `db:"provider_id" json:"provider_id"`
	Date       time.Time `db:"date" json:"date"`
	SlotStart  string    `db:"slot_start" json:"slot_start"`
	SlotEnd    string    `db:"slot_end" json:"slot_end"`
	IsBooked   bool      `db:"is_booked" json:"is_booked"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Appointment links a patient to a booked slot with a provider.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	ProviderID uuid.UUID `db:"provider_id" json:"provider_id"`
	SlotID     uuid.UUID `db:"slot_id" json:"slot_id"`
	Status     string    `db:"status" json:"status"`
	VisitType  string    `db:"visit_type" json:"visit_type"`
	Reason     *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// AppointmentDetail is an appointment enriched with slot timing and
// provider/hospital display fields for the list endpoint. The patient fields
// feed notification templates and are not serialized.
type AppointmentDetail struct {
	Appointment
	Date            time.Time `db:"date" json:"date"`
	SlotStart       string    `db:"slot_start" json:"slot_start"`
	SlotEnd         string    `db:"slot_end" json:"slot_end"`
	DoctorName      string    `db:"doctor_name" json:"doctor_name"`
	DoctorSpecialty string    `db:"doctor_specialty" json:"doctor_specialty"`
	HospitalName    string    `db:"hospital_name" json:"hospital_name"`
	HospitalCity    string    `db:"hospital_city" json:"hospital_city"`
	PatientName     string    `db:"patient_name" json:"-"`
	PatientEmail    string    `db:"patient_email" json:"-"`
}

// BookRequest carries the fields needed to book a slot.
type BookRequest struct {
	SlotID    uuid.UUID `json:"slot_id"`
	VisitType string    `json:"visit_type"`
	Reason    *string   `json:"reason,omitempty"`
}

// UpdateRequest carries optional appointment detail changes.
type UpdateRequest struct {
	VisitType *string `json:"visit_type,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ListFilter narrows and orders a patient's appointment list.
type ListFilter struct {
	Status string
	SortBy string
	Order  string
}

// CreateSlotRequest is the administrative insert for new availability.
type CreateSlotRequest struct {
	ProviderID uuid.UUID `json:"provider_id"`
	Date       string    `json:"date"`
	SlotStart  string    `json:"slot_start"`
	SlotEnd    string    `json:"slot_end"`
}
