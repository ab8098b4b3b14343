// Package directory serves the read-only provider catalog: hospitals and the
// doctors who practice at them.
package directory

import (
	"time"

	"github.com/google/uuid"
)

type Hospital struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	AddressLine string    `json:"address_line" db:"address_line"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Doctor struct {
	ID         uuid.UUID `json:"id" db:"id"`
	HospitalID uuid.UUID `json:"hospital_id" db:"hospital_id"`
	FullName   string    `json:"full_name" db:"full_name"`
	Specialty  string    `json:"specialty" db:"specialty"`
	Bio        *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DoctorDetail is a doctor joined with their hospital for display.
type DoctorDetail struct {
	Doctor
	HospitalName string `json:"hospital_name" db:"hospital_name"`
	HospitalCity string `json:"hospital_city" db:"hospital_city"`
}

// ExplorePage is the provider-selection payload: every hospital and every
// doctor, joined so the client needs no follow-up requests.
type ExplorePage struct {
	Hospitals []*Hospital     `json:"hospitals"`
	Doctors   []*DoctorDetail `json:"doctors"`
}
