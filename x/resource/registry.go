package resource

import (
	"context"

	"github.com/labstack/echo/v4"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/totegamma/charsheet/core"
)

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type entry struct {
	collection string
	handler    Handler
	counter    counter
}

// Registry maps a kind tag to the handler serving it
type Registry struct {
	entries map[string]entry
}

func register[T Record](r *Registry, kind Kind[T], db *gorm.DB, character core.CharacterService) {
	repository := NewRepository(db, kind)
	service := NewService(repository, character, kind)
	r.entries[kind.Tag] = entry{
		collection: kind.Collection,
		handler:    NewHandler(service, kind),
		counter:    repository,
	}
}

// NewRegistry instantiates every kind
func NewRegistry(db *gorm.DB, character core.CharacterService) *Registry {
	r := &Registry{entries: map[string]entry{}}
	register(r, InformationKind, db, character)
	register(r, VariableKind, db, character)
	register(r, RollKind, db, character)
	register(r, ResourceKind, db, character)
	register(r, SpellKind, db, character)
	register(r, ItemKind, db, character)
	return r
}

// Tags returns the registered kind tags in order
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Handler returns the handler of a kind
func (r *Registry) Handler(tag string) (Handler, bool) {
	e, ok := r.entries[tag]
	return e.handler, ok
}

// Collection returns the path segment of a kind
func (r *Registry) Collection(tag string) (string, bool) {
	e, ok := r.entries[tag]
	return e.collection, ok
}

// Register mounts every kind on the group
func (r *Registry) Register(g *echo.Group) {
	for _, tag := range r.Tags() {
		r.entries[tag].handler.Register(g)
	}
}

// Count returns the number of stored records per kind tag
func (r *Registry) Count(ctx context.Context) (map[string]int64, error) {
	ctx, span := tracer.Start(ctx, "Resource.Registry.Count")
	defer span.End()

	counts := make(map[string]int64, len(r.entries))
	for tag, e := range r.entries {
		count, err := e.counter.Count(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		counts[tag] = count
	}

	return counts, nil
}
