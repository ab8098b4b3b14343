package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	hospitals map[uuid.UUID]*Hospital
	doctors   map[uuid.UUID]*DoctorDetail
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		hospitals: make(map[uuid.UUID]*Hospital),
		doctors:   make(map[uuid.UUID]*DoctorDetail),
	}
}

func (m *mockRepo) ListHospitals(ctx context.Context) ([]*Hospital, error) {
	var out []*Hospital
	for _, h := range m.hospitals {
		out = append(out, h)
	}
	return out, nil
}

func (m *mockRepo) ListDoctors(ctx context.Context) ([]*DoctorDetail, error) {
	var out []*DoctorDetail
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockRepo) GetDoctor(ctx context.Context, id uuid.UUID) (*DoctorDetail, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}

func (m *mockRepo) addHospital(name, city string) *Hospital {
	h := &Hospital{ID: uuid.New(), Name: name, City: city, State: "IL", AddressLine: "1 Care Way"}
	m.hospitals[h.ID] = h
	return h
}

func (m *mockRepo) addDoctor(h *Hospital, name, specialty string) *DoctorDetail {
	d := &DoctorDetail{
		Doctor: Doctor{
			ID:         uuid.New(),
			HospitalID: h.ID,
			FullName:   name,
			Specialty:  specialty,
		},
		HospitalName: h.Name,
		HospitalCity: h.City,
	}
	m.doctors[d.ID] = d
	return d
}

func TestExplorePage_JoinsDoctorsWithHospitals(t *testing.T) {
	repo := newMockRepo()
	hosp := repo.addHospital("City General", "Springfield")
	repo.addDoctor(hosp, "Dr. Patel", "Cardiology")
	repo.addDoctor(hosp, "Dr. Nguyen", "Dermatology")
	h := NewHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/explore_page", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ExplorePage(c); err != nil {
		t.Fatalf("ExplorePage() error: %v", err)
	}

	var page ExplorePage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(page.Hospitals) != 1 {
		t.Errorf("expected 1 hospital, got %d", len(page.Hospitals))
	}
	if len(page.Doctors) != 2 {
		t.Errorf("expected 2 doctors, got %d", len(page.Doctors))
	}
	for _, d := range page.Doctors {
		if d.HospitalName != "City General" {
			t.Errorf("doctor %s missing hospital join: %q", d.FullName, d.HospitalName)
		}
	}
}

func TestExplorePage_EmptyCatalog(t *testing.T) {
	h := NewHandler(newMockRepo())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/explore_page", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ExplorePage(c); err != nil {
		t.Fatalf("ExplorePage() error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"hospitals":[]`) || !strings.Contains(body, `"doctors":[]`) {
		t.Errorf("expected empty arrays, got %s", body)
	}
}

func TestGetDoctor(t *testing.T) {
	repo := newMockRepo()
	hosp := repo.addHospital("City General", "Springfield")
	doc := repo.addDoctor(hosp, "Dr. Patel", "Cardiology")
	h := NewHandler(repo)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/"+doc.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID.String())

	if err := h.GetDoctor(c); err != nil {
		t.Fatalf("GetDoctor() error: %v", err)
	}
	var got DoctorDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.FullName != "Dr. Patel" || got.HospitalCity != "Springfield" {
		t.Errorf("unexpected doctor payload: %+v", got)
	}
}

func TestGetDoctor_NotFound(t *testing.T) {
	h := NewHandler(newMockRepo())
	e := echo.New()

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/doctors/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := h.GetDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestGetDoctor_InvalidID(t *testing.T) {
	h := NewHandler(newMockRepo())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
