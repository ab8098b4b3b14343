package scheduling

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicmate/clinicmate/internal/platform/auth"
	"github.com/clinicmate/clinicmate/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches the booking lifecycle endpoints to the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/provider_availability/:providerId/slots", h.ListProviderSlots)

	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.BookAppointment)
	api.PATCH("/appointments/:id/cancel", h.CancelAppointment)
	api.PATCH("/appointments/:id/reschedule", h.RescheduleAppointment)
	api.PATCH("/appointments/:id/update", h.UpdateAppointment)

	admin := api.Group("/admin", auth.RequireRole("admin"))
	admin.POST("/availability", h.CreateSlot)
}

func (h *Handler) ListProviderSlots(c echo.Context) error {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid provider id")
	}
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}

	slots, err := h.svc.SlotsForProvider(c.Request().Context(), providerID, date)
	if err != nil {
		return httpError(err)
	}
	if slots == nil {
		slots = []*AvailabilitySlot{}
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	f := ListFilter{
		Status: c.QueryParam("status"),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	}
	appts, err := h.svc.ListForUser(c.Request().Context(), userID, f)
	if err != nil {
		return httpError(err)
	}
	if appts == nil {
		appts = []*AppointmentDetail{}
	}

	p := pagination.FromContext(c)
	total := len(appts)
	page := appts[min(p.Offset, total):min(p.Offset+p.Limit, total)]
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, p.Limit, p.Offset))
}

func (h *Handler) BookAppointment(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SlotID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "slot_id is required")
	}

	if _, err := h.svc.Book(c.Request().Context(), userID, req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment created successfully"})
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	if err := h.svc.Cancel(c.Request().Context(), userID, apptID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment cancelled successfully"})
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	var req struct {
		NewSlotID uuid.UUID `json:"new_slot_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.NewSlotID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "new_slot_id is required")
	}

	if err := h.svc.Reschedule(c.Request().Context(), userID, apptID, req.NewSlotID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment rescheduled successfully"})
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.UpdateDetails(c.Request().Context(), userID, apptID, req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment updated successfully"})
}

func (h *Handler) CreateSlot(c echo.Context) error {
	var req CreateSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sl, err := h.svc.CreateSlot(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sl)
}

// requestUserID resolves the authenticated patient id or fails with 401.
func requestUserID(c echo.Context) (uuid.UUID, error) {
	uid := auth.UserIDFromContext(c.Request().Context())
	if uid == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return userID, nil
}

// httpError maps domain errors onto the published response contract.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		return echo.NewHTTPError(http.StatusBadRequest, "Selected slot is not available")
	case errors.Is(err, ErrSlotNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Slot not found")
	case errors.Is(err, ErrAppointmentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	case errors.Is(err, ErrAlreadyCancelled):
		return echo.NewHTTPError(http.StatusBadRequest, "Appointment is already cancelled")
	case errors.Is(err, ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, "Appointment belongs to another patient")
	case errors.Is(err, ErrSameSlot):
		return echo.NewHTTPError(http.StatusBadRequest, "Appointment already uses this slot")
	case errors.Is(err, ErrInvalidVisitType):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid visit type")
	case errors.Is(err, ErrNothingToUpdate):
		return echo.NewHTTPError(http.StatusBadRequest, "No fields to update")
	case errors.Is(err, ErrInvalidFilter):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid filter parameters")
	case errors.Is(err, ErrSlotOverlap):
		return echo.NewHTTPError(http.StatusBadRequest, "Slot overlaps existing availability")
	case errors.Is(err, ErrInvalidSlot):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid slot definition")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
