package db

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats is the connection-pool snapshot included in the database health
// payload.
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}

// HealthStatus is the body of the /health/db response.
type HealthStatus struct {
	Status  string    `json:"status"`
	Service string    `json:"service"`
	Version string    `json:"version"`
	Error   string    `json:"error,omitempty"`
	Pool    PoolStats `json:"pool"`
}

func poolStats(pool *pgxpool.Pool) PoolStats {
	stat := pool.Stat()
	return PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}
}

// healthStatus assembles the response body for a ping outcome.
func healthStatus(service, version string, stats PoolStats, pingErr error) (int, HealthStatus) {
	body := HealthStatus{
		Status:  "healthy",
		Service: service,
		Version: version,
		Pool:    stats,
	}
	if pingErr != nil {
		body.Status = "unhealthy"
		body.Error = pingErr.Error()
		return http.StatusServiceUnavailable, body
	}
	return http.StatusOK, body
}

// HealthHandler serves the database health check: a bounded ping plus pool
// statistics, stamped with the service identity so fleet monitoring can tell
// instances apart.
func HealthHandler(pool *pgxpool.Pool, service, version string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), connectTimeout)
		defer cancel()

		status, body := healthStatus(service, version, poolStats(pool), pool.Ping(ctx))
		return c.JSON(status, body)
	}
}
