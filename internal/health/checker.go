// Package health runs the diagnostics behind "backoffice doctor".
//
// Each Checker verifies one thing the console depends on (the API being
// reachable, the contract covering every client endpoint, writable log and
// download locations) and reports a Result:
//
//	manager := health.NewManager()
//	manager.AddChecker(health.NewAPIChecker(c))
//	manager.AddChecker(health.NewDirChecker("download-dir", dir))
//
//	for _, r := range manager.Check(ctx) {
//	    fmt.Println(r.Name, r.Status, r.Message)
//	}
package health

import (
	"context"
	"time"
)

// Checker verifies one dependency
type Checker interface {
	// Name is lowercase with hyphens, e.g. "api-reachable"
	Name() string

	// Check must respect the context deadline
	Check(ctx context.Context) *Result
}

// Status represents the health check status.
type Status string

const (
	// StatusHealthy indicates the checked component is fully operational.
	StatusHealthy Status = "healthy"

	// StatusDegraded means the console works with reduced functionality.
	StatusDegraded Status = "degraded"

	// StatusUnhealthy means the console will not work.
	StatusUnhealthy Status = "unhealthy"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Result represents the result of a health check.
type Result struct {
	// Name is the checker that produced the result
	Name string

	Status  Status
	Message string

	// Details holds structured extras such as status codes or paths
	Details map[string]any

	// Latency is how long the health check took to complete.
	Latency time.Duration
}

// NewResult creates a new health check result with the given status and message.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail to the result and returns the result for chaining.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

// Healthy creates a healthy result with the given message.
func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

// Degraded creates a degraded result with the given message.
func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

// Unhealthy creates an unhealthy result with the given message.
func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
