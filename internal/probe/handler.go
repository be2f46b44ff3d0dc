package probe

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hungle45/pcqueue/conc"
)

type HealthResponse struct {
	Status   Status                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
	Details  map[string]any           `json:"details,omitempty"`
}

type StatsResponse struct {
	Queues []Stats `json:"queues"`
}

type checkResult struct {
	Name   string
	Status ServiceStatus
}

// NewHandler returns a gin engine serving /ping, /health and /stats for the
// queues in registry.
func NewHandler(registry *Registry, opts ...ConfigOption) *gin.Engine {
	cfg := DefaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), NewRequestLogger(cfg.SkipPaths))

	engine.GET("/ping", Ping())
	engine.GET("/health", Health(registry.Checkers, cfg))
	engine.GET("/stats", QueueStats(registry))

	return engine
}

// Health runs every checker returned by checkers in parallel. The response is
// cfg.StatusOK when all of them are up and cfg.StatusNotOK otherwise.
func Health(checkers func() []Checker, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.JSON(cfg.StatusNotOK, HealthResponse{
					Status:   StatusDown,
					Services: map[string]ServiceStatus{},
					Details: map[string]any{
						"error": fmt.Sprintf("panic recovered: %v", r),
					},
				})
			}
		}()

		current := checkers()
		group := conc.NewGroup()

		resultChan := make(chan checkResult, len(current))
		for _, checker := range current {
			group.Go(func() {
				resultChan <- runCheck(c, checker)
			})
		}

		group.Wait()
		close(resultChan)

		response := HealthResponse{
			Status:   StatusUp,
			Services: make(map[string]ServiceStatus, len(current)),
		}
		for result := range resultChan {
			response.Services[result.Name] = result.Status
			if !result.Status.Status.IsUp() {
				response.Status = StatusDown
			}
		}

		if response.Status.IsUp() {
			c.JSON(cfg.StatusOK, response)
		} else {
			c.JSON(cfg.StatusNotOK, response)
		}
	}
}

// runCheck turns a panicking checker into a DOWN result.
func runCheck(ctx context.Context, checker Checker) (result checkResult) {
	result.Name = checker.Name()
	defer func() {
		if r := recover(); r != nil {
			result.Status = ServiceStatus{
				Status: StatusDown,
				Details: map[string]any{
					"error": fmt.Sprintf("panic recovered: %v", r),
				},
			}
		}
	}()

	result.Status = checker.Check(ctx)
	return result
}

func QueueStats(registry *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatsResponse{Queues: registry.Stats()})
	}
}

func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	}
}
