package records

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinrec/clinrec/internal/platform/auth"
	"github.com/clinrec/clinrec/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	write := auth.RequireRole(auth.RoleDoctor)

	mr := api.Group("/medical-records")
	mr.GET("", h.ListRecords)
	mr.GET("/:id", h.GetRecord)
	mr.POST("", h.CreateRecord, write)
	mr.PUT("/:id", h.UpdateRecord, write)
	mr.DELETE("/:id", h.DeleteRecord, write)

	pv := api.Group("/visits")
	pv.GET("", h.ListVisits)
	pv.GET("/:id", h.GetVisit)
	pv.POST("", h.CreateVisit, auth.RequireRole(auth.RoleDoctor, auth.RoleStaff))
	pv.PUT("/:id", h.UpdateVisit, auth.RequireRole(auth.RoleDoctor, auth.RoleStaff))
	pv.DELETE("/:id", h.DeleteVisit, write)

	rx := api.Group("/prescriptions")
	rx.GET("", h.ListPrescriptions)
	rx.GET("/:id", h.GetPrescription)
	rx.POST("", h.CreatePrescription, write)
	rx.PUT("/:id", h.UpdatePrescription, write)
	rx.DELETE("/:id", h.DeletePrescription, write)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) listPatientParam(c echo.Context) (*uuid.UUID, error) {
	raw := c.QueryParam("patient_id")
	if raw == "" {
		return nil, nil
	}
	pid, err := uuid.Parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	return &pid, nil
}

// -- MedicalRecord --

func (h *Handler) CreateRecord(c echo.Context) error {
	var m MedicalRecord
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRecord(c.Request().Context(), &m); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	m, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := h.listPatientParam(c)
	if err != nil {
		return err
	}
	if pid != nil {
		items, total, err := h.svc.ListRecordsByPatient(c.Request().Context(), *pid, pg.Limit, pg.Offset)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListRecords(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var m MedicalRecord
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.ID = id
	stored, err := h.svc.UpdateRecord(c.Request().Context(), &m)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- PatientVisit --

func (h *Handler) CreateVisit(c echo.Context) error {
	var v PatientVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateVisit(c.Request().Context(), &v); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) GetVisit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetVisit(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVisits(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := h.listPatientParam(c)
	if err != nil {
		return err
	}
	if pid != nil {
		items, total, err := h.svc.ListVisitsByPatient(c.Request().Context(), *pid, pg.Limit, pg.Offset)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListVisits(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateVisit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var v PatientVisit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	stored, err := h.svc.UpdateVisit(c.Request().Context(), &v)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *Handler) DeleteVisit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVisit(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Prescription --

func (h *Handler) CreatePrescription(c echo.Context) error {
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePrescription(c.Request().Context(), &p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPrescription(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := h.listPatientParam(c)
	if err != nil {
		return err
	}
	if pid != nil {
		items, total, err := h.svc.ListPrescriptionsByPatient(c.Request().Context(), *pid, pg.Limit, pg.Offset)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListPrescriptions(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	stored, err := h.svc.UpdatePrescription(c.Request().Context(), &p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePrescription(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
