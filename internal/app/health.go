package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{
		infra: infra,
	}
}

type dependencyStatus struct {
	name string
	err  error
}

func (h *HealthChecker) check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	results := make(chan dependencyStatus, 2)

	go func() {
		results <- dependencyStatus{name: "postgres", err: h.infra.Postgres().Ping(ctx)}
	}()

	go func() {
		results <- dependencyStatus{name: "redis", err: h.infra.Redis().Ping(ctx)}
	}()

	statuses := make(map[string]string, 2)
	for i := 0; i < 2; i++ {
		result := <-results
		if result.err != nil {
			statuses[result.name] = "fail"
		} else {
			statuses[result.name] = "pass"
		}
	}

	return statuses
}

func (h *HealthChecker) Handler(c *gin.Context) {
	statuses := h.check(c.Request.Context())

	status := "pass"
	code := http.StatusOK
	for _, s := range statuses {
		if s == "fail" {
			status = "fail"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, gin.H{
		"status":       status,
		"dependencies": statuses,
	})
}
