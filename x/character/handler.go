// Package character serves characters and their ownership transitions
package character

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/util"
	"github.com/totegamma/charsheet/x/auth"
)

var tracer = otel.Tracer("character")

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Mine(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
}

type handler struct {
	service core.CharacterService
}

// NewHandler creates a new handler
func NewHandler(service core.CharacterService) Handler {
	return &handler{service: service}
}

// List returns the characters of a server
func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.List")
	defer span.End()

	characters, err := h.service.List(ctx, auth.RequesterToken(c), c.Param("id"))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": characters})
}

// Create creates a character owned by the caller
func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Create")
	defer span.End()

	fields, err := util.ReadBody(c)
	if err != nil {
		span.RecordError(err)
		return err
	}

	name, err := util.StringField(fields, "name")
	if err != nil {
		return err
	}
	if name == nil {
		return core.NewErrorBadRequest("name is required")
	}

	created, err := h.service.Create(ctx, auth.RequesterToken(c), c.Param("id"), *name)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

// Mine returns the caller's character on a server
func (h handler) Mine(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Mine")
	defer span.End()

	character, err := h.service.Mine(ctx, auth.RequesterToken(c), c.Param("id"))
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": character})
}

// Get returns a character by ID
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Get")
	defer span.End()

	id, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}

	character, err := h.service.Get(ctx, auth.RequesterToken(c), id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": character})
}

// Update renames or claims/unclaims a character
func (h handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Character.Handler.Update")
	defer span.End()

	id, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}

	fields, err := util.ReadBody(c)
	if err != nil {
		span.RecordError(err)
		return err
	}

	var patch core.CharacterPatch
	patch.Name, err = util.StringField(fields, "name")
	if err != nil {
		return err
	}
	patch.User, err = util.StringField(fields, "user")
	if err != nil {
		return err
	}

	updated, err := h.service.Update(ctx, auth.RequesterToken(c), id, patch)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": updated})
}
