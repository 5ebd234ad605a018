package db

import (
	"errors"
	"net/http"
	"testing"
)

func TestHealthStatus_Healthy(t *testing.T) {
	stats := PoolStats{TotalConns: 3, IdleConns: 2, AcquiredConns: 1, MaxConns: 10}
	status, body := healthStatus("clinrec", "0.1.0", stats, nil)

	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body.Status != "healthy" || body.Error != "" {
		t.Errorf("unexpected body: %+v", body)
	}
	if body.Service != "clinrec" || body.Version != "0.1.0" {
		t.Errorf("service identity missing: %+v", body)
	}
	if body.Pool != stats {
		t.Errorf("pool stats not carried through: %+v", body.Pool)
	}
}

func TestHealthStatus_PingFailure(t *testing.T) {
	status, body := healthStatus("clinrec", "0.1.0", PoolStats{}, errors.New("connection refused"))

	if status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
	if body.Status != "unhealthy" {
		t.Errorf("status field = %q, want unhealthy", body.Status)
	}
	if body.Error != "connection refused" {
		t.Errorf("error field = %q", body.Error)
	}
}
