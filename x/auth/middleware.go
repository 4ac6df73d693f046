package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/charsheet/core"
)

// IdentifyIdentity stores the bearer token and, when it resolves, the caller id.
// Requests without a usable token pass through anonymously.
func (s *service) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")

		if authHeader != "" {
			split := strings.SplitN(authHeader, " ", 2)
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skip
			}

			authType, token := split[0], strings.TrimSpace(split[1])
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skip
			}

			if token == "" {
				goto skip
			}
			c.Set(core.RequesterTokenCtxKey, token)

			user, err := s.identity.ResolveCaller(ctx, token)
			if err != nil {
				span.RecordError(err)
				goto skip
			}

			c.Set(core.RequesterIdCtxKey, user.ID)
			span.SetAttributes(attribute.String("RequesterId", user.ID))
		}
	skip:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func (s *service) Restrict(principal Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.Restrict")
			defer span.End()

			switch principal {
			case ISKNOWN:
				if _, ok := c.Get(core.RequesterIdCtxKey).(string); !ok {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"status": "error",
						"error":  "you are not authorized to perform this action",
					})
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequesterToken returns the token stored by IdentifyIdentity, or ""
func RequesterToken(c echo.Context) string {
	token, _ := c.Get(core.RequesterTokenCtxKey).(string)
	return token
}
