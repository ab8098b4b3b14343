package scheduling

import "errors"

var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSlotUnavailable     = errors.New("slot is not available")
	ErrSlotOverlap         = errors.New("slot overlaps existing availability")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrNotOwner            = errors.New("appointment belongs to another patient")
	ErrSameSlot            = errors.New("appointment already uses this slot")
	ErrInvalidVisitType    = errors.New("invalid visit type")
	ErrNothingToUpdate     = errors.New("no updatable fields provided")
	ErrInvalidFilter       = errors.New("invalid list filter")
	ErrInvalidSlot         = errors.New("invalid slot definition")
)
