package resource

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/charsheet/core"
)

// Service is the CRUD surface of one kind, gated by the character it belongs to
type Service[T Record] interface {
	List(ctx context.Context, token string, characterID uint) ([]T, error)
	Create(ctx context.Context, token string, characterID uint, fields map[string]any) (T, error)
	Get(ctx context.Context, token string, characterID, id uint) (T, error)
	Update(ctx context.Context, token string, characterID, id uint, fields map[string]any) (T, error)
	Delete(ctx context.Context, token string, characterID, id uint) error
}

type service[T Record] struct {
	repository Repository[T]
	character  core.CharacterService
	kind       Kind[T]
}

// NewService creates a new service for the kind
func NewService[T Record](repository Repository[T], character core.CharacterService, kind Kind[T]) Service[T] {
	return &service[T]{repository, character, kind}
}

func (s *service[T]) List(ctx context.Context, token string, characterID uint) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Service.List")
	defer span.End()

	span.SetAttributes(attribute.String("kind", s.kind.Tag))

	_, _, character, err := s.character.Authorize(ctx, token, characterID, false)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return s.repository.List(ctx, character.ID)
}

func (s *service[T]) Create(ctx context.Context, token string, characterID uint, fields map[string]any) (T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Service.Create")
	defer span.End()

	span.SetAttributes(attribute.String("kind", s.kind.Tag))

	var zero T

	_, _, character, err := s.character.Authorize(ctx, token, characterID, true)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	values, err := s.kind.Fields.ForCreate(fields)
	if err != nil {
		return zero, err
	}

	created, err := s.repository.Create(ctx, character.ID, values)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	return created, nil
}

func (s *service[T]) Get(ctx context.Context, token string, characterID, id uint) (T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Service.Get")
	defer span.End()

	span.SetAttributes(attribute.String("kind", s.kind.Tag))

	var zero T

	_, _, character, err := s.character.Authorize(ctx, token, characterID, false)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	return s.repository.Get(ctx, character.ID, id)
}

// Update applies a partial update. All fields are coerced before anything is written.
func (s *service[T]) Update(ctx context.Context, token string, characterID, id uint, fields map[string]any) (T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Service.Update")
	defer span.End()

	span.SetAttributes(attribute.String("kind", s.kind.Tag))

	var zero T

	_, _, character, err := s.character.Authorize(ctx, token, characterID, true)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	values, err := s.kind.Fields.ForUpdate(fields)
	if err != nil {
		return zero, err
	}

	_, err = s.repository.Get(ctx, character.ID, id)
	if err != nil {
		return zero, err
	}

	updated, err := s.repository.Update(ctx, character.ID, id, values)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	return updated, nil
}

// Delete removes a record. Deleting one that does not exist succeeds.
func (s *service[T]) Delete(ctx context.Context, token string, characterID, id uint) error {
	ctx, span := tracer.Start(ctx, "Resource.Service.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("kind", s.kind.Tag))

	_, _, character, err := s.character.Authorize(ctx, token, characterID, true)
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = s.repository.Delete(ctx, character.ID, id)
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}
