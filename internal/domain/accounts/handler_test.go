package accounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicmate/clinicmate/internal/platform/auth"
)

func newTestHandler() (*Handler, *Service) {
	svc, _, _ := newTestService()
	return NewHandler(svc), svc
}

func postJSON(e *echo.Echo, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uuid.UUID) echo.Context {
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID.String())
	req = req.WithContext(ctx)
	return e.NewContext(req, rec)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestSignUpHandler_Success(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, rec := postJSON(e, "/api/auth/sign_up",
		`{"email":"jordan@example.com","password":"supersecret1","full_name":"Jordan Smith"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("SignUp() error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["message"] != "Sign-up successful" {
		t.Errorf("unexpected message %v", body["message"])
	}
	if body["token"] == "" || body["token"] == nil {
		t.Error("expected token in response")
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("response leaks password hash")
	}
}

func TestSignUpHandler_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	payload := `{"email":"jordan@example.com","password":"supersecret1","full_name":"Jordan Smith"}`
	c, _ := postJSON(e, "/api/auth/sign_up", payload)
	if err := h.SignUp(c); err != nil {
		t.Fatalf("first SignUp() error: %v", err)
	}

	c, _ = postJSON(e, "/api/auth/sign_up", payload)
	err := h.SignUp(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestLogInHandler_RoundTrip(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, _ := postJSON(e, "/api/auth/sign_up",
		`{"email":"jordan@example.com","password":"supersecret1","full_name":"Jordan Smith"}`)
	if err := h.SignUp(c); err != nil {
		t.Fatalf("SignUp() error: %v", err)
	}

	c, rec := postJSON(e, "/api/auth/log_in",
		`{"email":"jordan@example.com","password":"supersecret1"}`)
	if err := h.LogIn(c); err != nil {
		t.Fatalf("LogIn() error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Login successful" {
		t.Errorf("unexpected message %v", body["message"])
	}

	c, _ = postJSON(e, "/api/auth/log_in",
		`{"email":"jordan@example.com","password":"wrongpassword"}`)
	err := h.LogIn(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad credentials, got %v", err)
	}
	if he.Message != "Invalid email or password" {
		t.Errorf("unexpected message %v", he.Message)
	}
}

func TestLogOutHandler(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/log_out", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uuid.New())

	if err := h.LogOut(c); err != nil {
		t.Fatalf("LogOut() error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Logout successful" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestProfileHandlers_UpdateAndRead(t *testing.T) {
	h, svc := newTestHandler()
	e := echo.New()

	u, _, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    "jordan@example.com",
		Password: "supersecret1",
		FullName: "Jordan Smith",
	})
	if err != nil {
		t.Fatalf("SignUp() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/update_profile",
		strings.NewReader(`{"phone":"555-0100"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, u.ID)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if body := decodeBody(t, rec); body["message"] != "Profile updated successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/update_address",
		strings.NewReader(`{"line1":"123 Main St","city":"Springfield","state":"IL","postal_code":"62701"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = authedContext(e, req, rec, u.ID)
	if err := h.UpdateAddress(c); err != nil {
		t.Fatalf("UpdateAddress() error: %v", err)
	}
	if body := decodeBody(t, rec); body["message"] != "Address updated successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/profile_data", nil)
	rec = httptest.NewRecorder()
	c = authedContext(e, req, rec, u.ID)
	if err := h.ProfileData(c); err != nil {
		t.Fatalf("ProfileData() error: %v", err)
	}

	var profile Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.User.Phone == nil || *profile.User.Phone != "555-0100" {
		t.Errorf("expected updated phone, got %v", profile.User.Phone)
	}
	if profile.Address == nil || profile.Address.City != "Springfield" {
		t.Errorf("expected address in profile, got %+v", profile.Address)
	}
}

func TestProfileData_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/profile_data", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ProfileData(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
