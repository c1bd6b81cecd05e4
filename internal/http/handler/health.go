package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roguepikachu/libraryual/pkg"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// Health keeps the legacy ping endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"ok": true}, "ok"))
}

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes for the backing stores.
type HealthHandler struct {
	deps        []namedPinger
	pingTimeout time.Duration
}

type namedPinger struct {
	name string
	p    Pinger
}

// Check is one dependency result in a readiness response.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewHealthHandler probes whichever of pg and rdb are non-nil.
func NewHealthHandler(pg *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	h := &HealthHandler{pingTimeout: time.Second}
	if pg != nil {
		h.deps = append(h.deps, namedPinger{"postgres", pgPinger{pg}})
	}
	if rdb != nil {
		h.deps = append(h.deps, namedPinger{"redis", redisPinger{rdb}})
	}
	return h
}

// WithPinger registers an extra named dependency.
func (h *HealthHandler) WithPinger(name string, p Pinger) *HealthHandler {
	h.deps = append(h.deps, namedPinger{name, p})
	return h
}

type pgPinger struct{ pool *pgxpool.Pool }

func (p pgPinger) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

type redisPinger struct{ c *redis.Client }

func (r redisPinger) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// Liveness reports that the process is up. External deps are not checked.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"status": "alive"}, "ok"))
}

// Readiness pings every registered dependency.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	results := make([]Check, 0, len(h.deps))
	ready := true
	for _, d := range h.deps {
		if err := d.p.Ping(ctx); err != nil {
			ready = false
			results = append(results, Check{Name: d.name, Status: "down", Error: err.Error()})
			continue
		}
		results = append(results, Check{Name: d.name, Status: "up"})
	}

	if ready {
		c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"ready": true, "checks": results}, "ready"))
		return
	}
	logger.Warn(c.Request.Context(), "readiness failed: %+v", results)
	c.JSON(http.StatusServiceUnavailable, pkg.NewResponse(http.StatusServiceUnavailable, gin.H{"ready": false, "checks": results}, "not ready"))
}
