//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package resource

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/totegamma/charsheet/core"
)

// Repository stores the records of one kind.
// values are keyed by field name and already coerced.
type Repository[T Record] interface {
	List(ctx context.Context, characterID uint) ([]T, error)
	Get(ctx context.Context, characterID, id uint) (T, error)
	Create(ctx context.Context, characterID uint, values map[string]any) (T, error)
	Update(ctx context.Context, characterID, id uint, values map[string]any) (T, error)
	Delete(ctx context.Context, characterID, id uint) error
	Count(ctx context.Context) (int64, error)
}

type repository[T Record] struct {
	db   *gorm.DB
	kind Kind[T]
}

// NewRepository creates a new repository for the kind
func NewRepository[T Record](db *gorm.DB, kind Kind[T]) Repository[T] {
	return &repository[T]{db, kind}
}

func (r *repository[T]) List(ctx context.Context, characterID uint) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Repository.List")
	defer span.End()

	query := r.db.WithContext(ctx).Where("character_id = ?", characterID)
	for _, order := range r.kind.Order {
		query = query.Order(order)
	}

	var items []T
	err := query.Order("id ASC").Find(&items).Error
	if err != nil {
		span.RecordError(err)
		return []T{}, err
	}
	if items == nil {
		return []T{}, nil
	}

	return items, nil
}

func (r *repository[T]) Get(ctx context.Context, characterID, id uint) (T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Repository.Get")
	defer span.End()

	var item T
	err := r.db.WithContext(ctx).First(&item, "character_id = ? AND id = ?", characterID, id).Error
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return zero, err
	}

	return item, nil
}

// Create inserts only the given columns so the others take their defaults,
// then reads the row back.
func (r *repository[T]) Create(ctx context.Context, characterID uint, values map[string]any) (T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Repository.Create")
	defer span.End()

	var zero T

	fields := make(map[string]any, len(values)+1)
	columns := []string{"character_id"}
	for name, value := range values {
		fields[name] = value
		columns = append(columns, name)
	}
	fields["characterID"] = characterID

	raw, err := json.Marshal(fields)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	var item T
	err = json.Unmarshal(raw, &item)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	result := r.db.WithContext(ctx).Select(columns).Create(&item)
	if result.Error != nil {
		if core.IsIntegrityViolation(result.Error) {
			return zero, core.NewErrorConflict()
		}
		span.RecordError(result.Error)
		return zero, result.Error
	}

	return r.Get(ctx, characterID, item.RecordID())
}

func (r *repository[T]) Update(ctx context.Context, characterID, id uint, values map[string]any) (T, error) {
	ctx, span := tracer.Start(ctx, "Resource.Repository.Update")
	defer span.End()

	var zero T

	if len(values) > 0 {
		result := r.db.WithContext(ctx).
			Model(new(T)).
			Where("character_id = ? AND id = ?", characterID, id).
			Updates(values)
		if result.Error != nil {
			if core.IsIntegrityViolation(result.Error) {
				return zero, core.NewErrorConflict()
			}
			span.RecordError(result.Error)
			return zero, result.Error
		}
		if result.RowsAffected == 0 {
			return zero, core.NewErrorNotFound()
		}
	}

	return r.Get(ctx, characterID, id)
}

// Delete removes the record. Deleting a missing record is not an error.
func (r *repository[T]) Delete(ctx context.Context, characterID, id uint) error {
	ctx, span := tracer.Start(ctx, "Resource.Repository.Delete")
	defer span.End()

	err := r.db.WithContext(ctx).Where("character_id = ? AND id = ?", characterID, id).Delete(new(T)).Error
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

func (r *repository[T]) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Resource.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return count, nil
}
