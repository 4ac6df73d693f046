package resource

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/charsheet/util"
	"github.com/totegamma/charsheet/x/auth"
)

var tracer = otel.Tracer("resource")

// Handler is the interface for handling HTTP requests
type Handler interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error

	// Register mounts the kind under /characters/:id/<collection>
	Register(g *echo.Group)
}

type handler[T Record] struct {
	service Service[T]
	kind    Kind[T]
}

// NewHandler creates a new handler
func NewHandler[T Record](service Service[T], kind Kind[T]) Handler {
	return &handler[T]{service, kind}
}

func (h *handler[T]) Register(g *echo.Group) {
	base := "/characters/:id/" + h.kind.Collection
	g.GET(base, h.List)
	g.POST(base, h.Create)
	g.GET(base+"/:item", h.Get)
	g.PATCH(base+"/:item", h.Update)
	g.DELETE(base+"/:item", h.Delete)
}

func (h *handler[T]) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resource.Handler.List")
	defer span.End()

	characterID, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.service.List(ctx, auth.RequesterToken(c), characterID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": items})
}

func (h *handler[T]) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resource.Handler.Create")
	defer span.End()

	characterID, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}

	fields, err := util.ReadBody(c)
	if err != nil {
		span.RecordError(err)
		return err
	}

	created, err := h.service.Create(ctx, auth.RequesterToken(c), characterID, fields)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

func (h *handler[T]) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resource.Handler.Get")
	defer span.End()

	characterID, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}
	id, err := util.ParseID(c, "item")
	if err != nil {
		return err
	}

	item, err := h.service.Get(ctx, auth.RequesterToken(c), characterID, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": item})
}

func (h *handler[T]) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resource.Handler.Update")
	defer span.End()

	characterID, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}
	id, err := util.ParseID(c, "item")
	if err != nil {
		return err
	}

	fields, err := util.ReadBody(c)
	if err != nil {
		span.RecordError(err)
		return err
	}

	updated, err := h.service.Update(ctx, auth.RequesterToken(c), characterID, id, fields)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": updated})
}

func (h *handler[T]) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Resource.Handler.Delete")
	defer span.End()

	characterID, err := util.ParseID(c, "id")
	if err != nil {
		return err
	}
	id, err := util.ParseID(c, "item")
	if err != nil {
		return err
	}

	err = h.service.Delete(ctx, auth.RequesterToken(c), characterID, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
