package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmalitics/backend/internal/infrastructure/persistence"
	"github.com/pharmalitics/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system and health API endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, appName, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		appName:   appName,
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.Info)
		system.GET("/ping", h.Ping)
		system.GET("/health", h.Health)
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic system information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.appName,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ping checks that the API is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{
		"message":   "pong",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health statuses
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthCheck is one component of the health report
type HealthCheck struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse aggregates component health
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]HealthCheck `json:"checks"`
}

// Health reports database and runtime health. A failing component degrades
// the response to 503.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: statusHealthy,
		Checks: map[string]HealthCheck{},
	}

	dbCheck := HealthCheck{Status: statusHealthy}
	if err := h.db.Ping(); err != nil {
		dbCheck = HealthCheck{Status: statusDegraded, Detail: err.Error()}
		resp.Status = statusDegraded
	} else if stats, err := h.db.Stats(); err == nil {
		if stats.MaxOpenConnections > 0 &&
			stats.OpenConnections*10 >= stats.MaxOpenConnections*9 {
			dbCheck = HealthCheck{Status: statusDegraded, Detail: "connection pool near capacity"}
			resp.Status = statusDegraded
		}
	}
	resp.Checks["database"] = dbCheck

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	memCheck := HealthCheck{Status: statusHealthy}
	if mem.Sys > 0 && mem.HeapAlloc*10 >= mem.Sys*9 {
		memCheck = HealthCheck{Status: statusDegraded, Detail: "heap usage above 90% of reserved memory"}
		resp.Status = statusDegraded
	}
	resp.Checks["memory"] = memCheck

	status := http.StatusOK
	if resp.Status != statusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}
