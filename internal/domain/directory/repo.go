package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrDoctorNotFound = errors.New("doctor not found")

// Repository reads the provider catalog.
type Repository interface {
	ListHospitals(ctx context.Context) ([]*Hospital, error)
	ListDoctors(ctx context.Context) ([]*DoctorDetail, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*DoctorDetail, error)
}
