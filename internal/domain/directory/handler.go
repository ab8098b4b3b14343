package directory

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/explore_page", h.ExplorePage)
	api.GET("/doctors/:id", h.GetDoctor)
}

// ExplorePage returns every hospital and doctor in one payload so the client
// can render provider selection without follow-up requests.
func (h *Handler) ExplorePage(c echo.Context) error {
	ctx := c.Request().Context()

	hospitals, err := h.repo.ListHospitals(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load hospitals")
	}
	doctors, err := h.repo.ListDoctors(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load doctors")
	}

	page := ExplorePage{Hospitals: hospitals, Doctors: doctors}
	if page.Hospitals == nil {
		page.Hospitals = []*Hospital{}
	}
	if page.Doctors == nil {
		page.Doctors = []*DoctorDetail{}
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctor id")
	}

	d, err := h.repo.GetDoctor(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, d)
}
