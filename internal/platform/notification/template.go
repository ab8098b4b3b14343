package notification

import (
	"fmt"
	"strings"
	"sync"
)

// Template defines a reusable notification template.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TemplateEngine manages notification templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in templates pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{
		templates: make(map[string]*Template),
	}
	e.registerBuiltIn()
	return e
}

const (
	TemplateAppointmentCreated     = "appointment-created"
	TemplateAppointmentCancelled   = "appointment-cancelled"
	TemplateAppointmentRescheduled = "appointment-rescheduled"
	TemplateAppointmentUpdated     = "appointment-updated"
	TemplatePasswordReset          = "password-reset"
)

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      TemplateAppointmentCreated,
			Name:    "Appointment Created",
			Subject: "Appointment Created",
			Body:    "Dear {{patient_name}}, your {{visit_type}} appointment with {{doctor_name}} on {{date}} at {{time}}{{location}} has been booked.",
		},
		{
			ID:      TemplateAppointmentCancelled,
			Name:    "Appointment Cancelled",
			Subject: "Appointment Cancelled",
			Body:    "Dear {{patient_name}}, your appointment with {{doctor_name}} on {{date}} at {{time}} has been cancelled.",
		},
		{
			ID:      TemplateAppointmentRescheduled,
			Name:    "Appointment Rescheduled",
			Subject: "Appointment Rescheduled",
			Body:    "Dear {{patient_name}}, your appointment with {{doctor_name}} has been rescheduled to {{date}} at {{time}}{{location}}.",
		},
		{
			ID:      TemplateAppointmentUpdated,
			Name:    "Appointment Update",
			Subject: "Appointment Update",
			Body:    "Dear {{patient_name}}, your appointment with {{doctor_name}} on {{date}} at {{time}} has been updated.",
		},
		{
			ID:      TemplatePasswordReset,
			Name:    "Password Reset",
			Subject: "Password Reset Request",
			Body:    "You requested a password reset. Use the following code to reset your password: {{reset_code}}",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using the
// supplied data map. Keys present in the template but absent from data are left
// as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}
