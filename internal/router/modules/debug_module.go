package modules

import (
	"context"
	"expvar"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether one backend answers.
type HealthCheck func(ctx context.Context) error

// DebugModule serves /healthz and, when enabled, expvar at /debug/vars.
type DebugModule struct {
	MetricsEnabled bool
	Limiter        gin.HandlerFunc
	Checks         map[string]HealthCheck
}

func NewDebugModule(metricsEnabled bool, limiter gin.HandlerFunc, checks map[string]HealthCheck) *DebugModule {
	return &DebugModule{MetricsEnabled: metricsEnabled, Limiter: limiter, Checks: checks}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.health)
	if !m.MetricsEnabled {
		return
	}
	if m.Limiter != nil {
		rg.GET("/debug/vars", m.Limiter, gin.WrapH(expvar.Handler()))
		return
	}
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(m.Checks))
	for name := range m.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(gin.H, len(names))
	for _, name := range names {
		if err := m.Checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}
