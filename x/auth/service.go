// Package auth extracts the caller's bearer token and guards routes that need one
package auth

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/charsheet/core"
)

var tracer = otel.Tracer("auth")

// Service is the interface for auth service
type Service interface {
	IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc
	Restrict(principal Principal) echo.MiddlewareFunc
}

type service struct {
	identity core.IdentityService
}

// NewService creates a new auth service
func NewService(identity core.IdentityService) Service {
	return &service{identity}
}
