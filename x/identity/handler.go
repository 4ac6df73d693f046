package identity

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/x/auth"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	Me(c echo.Context) error
	MyServers(c echo.Context) error
	GetUser(c echo.Context) error
	GetServer(c echo.Context) error
}

type handler struct {
	service    core.IdentityService
	permission core.PermissionService
}

// NewHandler creates a new handler
func NewHandler(service core.IdentityService, permission core.PermissionService) Handler {
	return &handler{service, permission}
}

// Me returns the caller
func (h handler) Me(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Identity.Handler.Me")
	defer span.End()

	user, err := h.service.ResolveCaller(ctx, auth.RequesterToken(c))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": user})
}

// MyServers returns the caller's servers the bot is in
func (h handler) MyServers(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Identity.Handler.MyServers")
	defer span.End()

	token := auth.RequesterToken(c)
	_, err := h.service.ResolveCaller(ctx, token)
	if err != nil {
		span.RecordError(err)
		return err
	}

	guilds, err := h.service.ListGuilds(ctx, token)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": guilds})
}

// GetUser returns a user. With ?server= the membership and admin flag are merged in,
// falling back to the plain user when they are not a member.
func (h handler) GetUser(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Identity.Handler.GetUser")
	defer span.End()

	_, err := h.service.ResolveCaller(ctx, auth.RequesterToken(c))
	if err != nil {
		span.RecordError(err)
		return err
	}

	id := c.Param("id")
	server := c.QueryParam("server")

	if server != "" {
		member, err := h.service.ResolveMember(ctx, server, id)
		if err == nil {
			admin, err := h.permission.IsAdminInGuild(ctx, server, member)
			if err != nil {
				span.RecordError(err)
				return err
			}
			joinedAt := member.JoinedAt
			return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": core.UserWithMember{
				User:     member.User,
				Nick:     member.Nick,
				Roles:    member.Roles,
				JoinedAt: &joinedAt,
				Admin:    &admin,
			}})
		}
		if !core.IsNotFound(err) {
			span.RecordError(err)
			return err
		}
	}

	user, err := h.service.GetUser(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": core.UserWithMember{User: user}})
}

// GetServer returns a guild the caller is a member of
func (h handler) GetServer(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Identity.Handler.GetServer")
	defer span.End()

	caller, err := h.service.ResolveCaller(ctx, auth.RequesterToken(c))
	if err != nil {
		span.RecordError(err)
		return err
	}

	id := c.Param("id")
	_, err = h.service.ResolveMember(ctx, id, caller.ID)
	if err != nil {
		if core.IsNotFound(err) {
			return core.NewErrorPermissionDenied()
		}
		span.RecordError(err)
		return err
	}

	guild, err := h.service.GetGuild(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": guild})
}
