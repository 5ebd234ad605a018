package staff

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
	body := `{"user_id":"` + env.userID.String() + `","department_id":"` + env.deptID.String() + `","license_number":"LIC-42"}`
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
}

func TestHandler_Create_DanglingReference(t *testing.T) {
	h, env, e := newTestHandler()
	body := `{"user_id":"00000000-0000-0000-0000-000000000001","department_id":"` + env.deptID.String() + `","license_number":"LIC-42"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err == nil {
		t.Error("expected error for unknown user reference")
	}
}

func TestHandler_Get(t *testing.T) {
	h, env, e := newTestHandler()
	d := &Doctor{UserID: env.userID, DepartmentID: env.deptID, LicenseNumber: "LIC-42"}
	env.svc.Create(context.Background(), d)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_List(t *testing.T) {
	h, env, e := newTestHandler()
	env.svc.Create(context.Background(), &Doctor{UserID: env.userID, DepartmentID: env.deptID, LicenseNumber: "LIC-42"})

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

func TestHandler_Delete(t *testing.T) {
	h, env, e := newTestHandler()
	d := &Doctor{UserID: env.userID, DepartmentID: env.deptID, LicenseNumber: "LIC-42"}
	env.svc.Create(context.Background(), d)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
