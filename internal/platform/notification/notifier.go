package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clinicmate/clinicmate/internal/domain/scheduling"
)

// AppointmentNotifier emails patients about appointment lifecycle events.
// Delivery is best-effort: sends run in the background and failures are
// logged, never surfaced to the booking flow.
type AppointmentNotifier struct {
	manager *Manager
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

func NewAppointmentNotifier(manager *Manager, logger zerolog.Logger) *AppointmentNotifier {
	return &AppointmentNotifier{
		manager: manager,
		logger:  logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *AppointmentNotifier) AppointmentCreated(ctx context.Context, d *scheduling.AppointmentDetail) {
	n.dispatch(ctx, TemplateAppointmentCreated, d)
}

func (n *AppointmentNotifier) AppointmentCancelled(ctx context.Context, d *scheduling.AppointmentDetail) {
	n.dispatch(ctx, TemplateAppointmentCancelled, d)
}

func (n *AppointmentNotifier) AppointmentRescheduled(ctx context.Context, d *scheduling.AppointmentDetail) {
	n.dispatch(ctx, TemplateAppointmentRescheduled, d)
}

func (n *AppointmentNotifier) AppointmentUpdated(ctx context.Context, d *scheduling.AppointmentDetail) {
	n.dispatch(ctx, TemplateAppointmentUpdated, d)
}

// Wait blocks until all in-flight sends have finished. Called during
// graceful shutdown and from tests.
func (n *AppointmentNotifier) Wait() {
	n.wg.Wait()
}

func (n *AppointmentNotifier) dispatch(ctx context.Context, templateID string, d *scheduling.AppointmentDetail) {
	if d.PatientEmail == "" {
		n.logger.Warn().
			Str("template", templateID).
			Str("appointment_id", d.ID.String()).
			Msg("skipping notification: no patient email")
		return
	}

	data := templateData(d)
	recipient := d.PatientEmail
	apptID := d.ID.String()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if _, err := n.manager.SendFromTemplate(ctx, templateID, data, recipient); err != nil {
			n.logger.Error().
				Err(err).
				Str("template", templateID).
				Str("appointment_id", apptID).
				Msg("failed to send appointment notification")
			return
		}
		n.logger.Info().
			Str("template", templateID).
			Str("appointment_id", apptID).
			Msg("appointment notification sent")
	}()
}

func templateData(d *scheduling.AppointmentDetail) map[string]string {
	location := ""
	if d.HospitalName != "" {
		location = " at " + d.HospitalName
		if d.HospitalCity != "" {
			location += ", " + d.HospitalCity
		}
	}
	return map[string]string{
		"patient_name": d.PatientName,
		"doctor_name":  d.DoctorName,
		"visit_type":   d.VisitType,
		"date":         d.Date.Format("Jan 2, 2006"),
		"time":         d.SlotStart,
		"location":     location,
	}
}
