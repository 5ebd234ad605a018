package scheduling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *testEnv, *echo.Echo) {
	env := newTestEnv()
	return NewHandler(env.svc), env, echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, env, e := newTestHandler()
	body := `{"patient_id":"` + env.patientID.String() + `","doctor_id":"` + env.doctorID.String() +
		`","department_id":"` + env.deptID.String() + `","appointment_date":"2026-09-15T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"scheduled"`) {
		t.Errorf("expected default status in response, got %s", rec.Body.String())
	}
}

func TestHandler_Create_DanglingPatient(t *testing.T) {
	h, env, e := newTestHandler()
	body := `{"patient_id":"00000000-0000-0000-0000-000000000001","doctor_id":"` + env.doctorID.String() +
		`","department_id":"` + env.deptID.String() + `","appointment_date":"2026-09-15T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err == nil {
		t.Error("expected error for unknown patient reference")
	}
}

func TestHandler_List(t *testing.T) {
	h, env, e := newTestHandler()
	env.svc.Create(context.Background(), env.validAppointment())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_List_FilterByPatient(t *testing.T) {
	h, env, e := newTestHandler()
	env.svc.Create(context.Background(), env.validAppointment())

	req := httptest.NewRequest(http.MethodGet, "/?patient_id="+env.patientID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Get(t *testing.T) {
	h, env, e := newTestHandler()
	a := env.validAppointment()
	env.svc.Create(context.Background(), a)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, env, e := newTestHandler()
	a := env.validAppointment()
	env.svc.Create(context.Background(), a)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
