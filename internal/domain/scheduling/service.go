package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validVisitTypes = map[string]bool{
	VisitNewPatient:     true,
	VisitFollowUp:       true,
	VisitSickVisit:      true,
	VisitAnnualPhysical: true,
}

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

var validSortKeys = map[string]bool{
	"":           true,
	"date":       true,
	"created_at": true,
	"status":     true,
}

type Service struct {
	slots    SlotRepository
	appts    AppointmentRepository
	tx       TxRunner
	notifier Notifier
}

func NewService(slots SlotRepository, appts AppointmentRepository, tx TxRunner, notifier Notifier) *Service {
	return &Service{slots: slots, appts: appts, tx: tx, notifier: notifier}
}

// Book reserves a slot and creates a scheduled appointment in one
// transaction. The slot flip is a conditional update, so of two concurrent
// bookings for the same slot exactly one wins and the other sees
// ErrSlotUnavailable.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, req BookRequest) (*Appointment, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	if req.SlotID == uuid.Nil {
		return nil, fmt.Errorf("slot_id is required")
	}
	if !validVisitTypes[req.VisitType] {
		return nil, ErrInvalidVisitType
	}

	var appt *Appointment
	var detail *AppointmentDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		booked, err := s.slots.MarkBooked(ctx, req.SlotID)
		if err != nil {
			return fmt.Errorf("book slot: %w", err)
		}
		if !booked {
			if _, err := s.slots.GetByID(ctx, req.SlotID); err != nil {
				return err
			}
			return ErrSlotUnavailable
		}

		sl, err := s.slots.GetByID(ctx, req.SlotID)
		if err != nil {
			return err
		}

		appt = &Appointment{
			UserID:     userID,
			ProviderID: sl.ProviderID,
			SlotID:     sl.ID,
			Status:     StatusScheduled,
			VisitType:  req.VisitType,
			Reason:     req.Reason,
		}
		if err := s.appts.Create(ctx, appt); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		detail, err = s.appts.GetDetailByID(ctx, appt.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.AppointmentCreated(context.WithoutCancel(ctx), detail)
	return appt, nil
}

// Cancel marks the appointment cancelled and frees its slot atomically.
func (s *Service) Cancel(ctx context.Context, userID, apptID uuid.UUID) error {
	var detail *AppointmentDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		appt, err := s.appts.GetByID(ctx, apptID)
		if err != nil {
			return err
		}
		if appt.UserID != userID {
			return ErrNotOwner
		}
		if appt.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}

		appt.Status = StatusCancelled
		if err := s.appts.Update(ctx, appt); err != nil {
			return fmt.Errorf("cancel appointment: %w", err)
		}
		if err := s.slots.MarkFree(ctx, appt.SlotID); err != nil {
			return fmt.Errorf("free slot: %w", err)
		}

		detail, err = s.appts.GetDetailByID(ctx, appt.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.notifier.AppointmentCancelled(context.WithoutCancel(ctx), detail)
	return nil
}

// Reschedule moves the appointment to a new free slot, freeing the old one.
// All three writes share one transaction so a failure leaves no dangling
// cross-references.
func (s *Service) Reschedule(ctx context.Context, userID, apptID, newSlotID uuid.UUID) error {
	if newSlotID == uuid.Nil {
		return fmt.Errorf("new_slot_id is required")
	}

	var detail *AppointmentDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		appt, err := s.appts.GetByID(ctx, apptID)
		if err != nil {
			return err
		}
		if appt.UserID != userID {
			return ErrNotOwner
		}
		if appt.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}
		if appt.SlotID == newSlotID {
			return ErrSameSlot
		}

		booked, err := s.slots.MarkBooked(ctx, newSlotID)
		if err != nil {
			return fmt.Errorf("book new slot: %w", err)
		}
		if !booked {
			if _, err := s.slots.GetByID(ctx, newSlotID); err != nil {
				return err
			}
			return ErrSlotUnavailable
		}

		newSlot, err := s.slots.GetByID(ctx, newSlotID)
		if err != nil {
			return err
		}

		if err := s.slots.MarkFree(ctx, appt.SlotID); err != nil {
			return fmt.Errorf("free old slot: %w", err)
		}

		appt.SlotID = newSlot.ID
		appt.ProviderID = newSlot.ProviderID
		if err := s.appts.Update(ctx, appt); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}

		detail, err = s.appts.GetDetailByID(ctx, appt.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.notifier.AppointmentRescheduled(context.WithoutCancel(ctx), detail)
	return nil
}

// UpdateDetails changes the visit type and/or reason of a scheduled
// appointment.
func (s *Service) UpdateDetails(ctx context.Context, userID, apptID uuid.UUID, req UpdateRequest) error {
	if req.VisitType == nil && req.Reason == nil {
		return ErrNothingToUpdate
	}
	if req.VisitType != nil && !validVisitTypes[*req.VisitType] {
		return ErrInvalidVisitType
	}

	var detail *AppointmentDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		appt, err := s.appts.GetByID(ctx, apptID)
		if err != nil {
			return err
		}
		if appt.UserID != userID {
			return ErrNotOwner
		}
		if appt.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}

		if req.VisitType != nil {
			appt.VisitType = *req.VisitType
		}
		if req.Reason != nil {
			appt.Reason = req.Reason
		}
		if err := s.appts.Update(ctx, appt); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}

		detail, err = s.appts.GetDetailByID(ctx, appt.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.notifier.AppointmentUpdated(context.WithoutCancel(ctx), detail)
	return nil
}

// ListForUser returns the patient's appointments enriched with slot and
// provider display fields.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, f ListFilter) ([]*AppointmentDetail, error) {
	if f.Status != "" && !validStatuses[f.Status] {
		return nil, ErrInvalidFilter
	}
	if !validSortKeys[f.SortBy] {
		return nil, ErrInvalidFilter
	}
	if f.Order != "" && f.Order != "asc" && f.Order != "desc" {
		return nil, ErrInvalidFilter
	}
	return s.appts.ListDetailsByUser(ctx, userID, f)
}

// SlotsForProvider returns a provider's slots for a calendar date.
func (s *Service) SlotsForProvider(ctx context.Context, providerID uuid.UUID, date string) ([]*AvailabilitySlot, error) {
	if providerID == uuid.Nil {
		return nil, fmt.Errorf("provider id is required")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidFilter)
	}
	return s.slots.ListByProviderDate(ctx, providerID, day)
}

// CreateSlot inserts new availability for a provider, rejecting windows that
// overlap an existing slot on the same date.
func (s *Service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*AvailabilitySlot, error) {
	if req.ProviderID == uuid.Nil {
		return nil, ErrInvalidSlot
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	start, err := time.Parse("15:04:05", req.SlotStart)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	end, err := time.Parse("15:04:05", req.SlotEnd)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	if !end.After(start) {
		return nil, ErrInvalidSlot
	}

	sl := &AvailabilitySlot{
		ProviderID: req.ProviderID,
		Date:       day,
		SlotStart:  req.SlotStart,
		SlotEnd:    req.SlotEnd,
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		overlap, err := s.slots.HasOverlap(ctx, req.ProviderID, day, req.SlotStart, req.SlotEnd)
		if err != nil {
			return err
		}
		if overlap {
			return ErrSlotOverlap
		}
		return s.slots.Create(ctx, sl)
	})
	if err != nil {
		return nil, err
	}
	return sl, nil
}
