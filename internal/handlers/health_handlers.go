package handlers

import (
	"context"
	"net/http"
	"time"

	"garagedesk/internal/caching"
	"garagedesk/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
	storage  services.StorageService
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, storage services.StorageService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc, storage: storage}
}

// HealthStatus is the body of the detailed health endpoint.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Liveness handles GET /health.
func (h *HealthHandlers) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. Ready means the database answers.
func (h *HealthHandlers) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// Detailed handles GET /health/detailed, probing every dependency.
func (h *HealthHandlers) Detailed(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	if h.storage != nil {
		if err := h.storage.Ping(ctx); err != nil {
			health.Services["storage"] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services["storage"] = "healthy"
		}
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
