//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package character

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/totegamma/charsheet/core"
)

// Repository is the interface for character repository
type Repository interface {
	Get(ctx context.Context, id uint) (core.Character, error)
	ListByServer(ctx context.Context, server string, includeDM bool) ([]core.Character, error)
	FindByOwner(ctx context.Context, server, owner string) (core.Character, error)
	Create(ctx context.Context, character core.Character) (core.Character, error)
	Update(ctx context.Context, character core.Character, expected *string, release bool) (core.Character, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new character repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns a character by ID
func (r *repository) Get(ctx context.Context, id uint) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Get")
	defer span.End()

	var character core.Character
	err := r.db.WithContext(ctx).First(&character, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Character{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

// ListByServer returns the characters of a server ordered by name
func (r *repository) ListByServer(ctx context.Context, server string, includeDM bool) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.ListByServer")
	defer span.End()

	query := r.db.WithContext(ctx).Where("server = ?", server)
	if !includeDM {
		query = query.Where("owner IS DISTINCT FROM ?", core.OwnerDM)
	}

	var characters []core.Character
	err := query.Order("name ASC").Order("id ASC").Find(&characters).Error
	if err != nil {
		span.RecordError(err)
		return []core.Character{}, err
	}
	if characters == nil {
		return []core.Character{}, nil
	}

	return characters, nil
}

// FindByOwner returns the character the user owns on the server
func (r *repository) FindByOwner(ctx context.Context, server, owner string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.FindByOwner")
	defer span.End()

	var character core.Character
	err := r.db.WithContext(ctx).First(&character, "server = ? AND owner = ?", server, owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Character{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

// Create inserts a new character
func (r *repository) Create(ctx context.Context, character core.Character) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Create")
	defer span.End()

	err := r.db.WithContext(ctx).Omit("ID").Create(&character).Error
	if err != nil {
		if core.IsIntegrityViolation(err) {
			return core.Character{}, core.NewErrorConflict()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

// Update writes name and owner in one transaction.
// The write only applies while the stored owner still equals expected; otherwise Conflict.
// With release, any other character of the new owner on the same server is unclaimed first.
func (r *repository) Update(ctx context.Context, character core.Character, expected *string, release bool) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Update")
	defer span.End()

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		span.RecordError(tx.Error)
		return core.Character{}, tx.Error
	}

	if release && character.Owner != nil {
		err := tx.Model(&core.Character{}).
			Where("server = ? AND owner = ? AND id <> ?", character.Server, *character.Owner, character.ID).
			Update("owner", nil).Error
		if err != nil {
			tx.Rollback()
			span.RecordError(err)
			return core.Character{}, err
		}
	}

	result := tx.Model(&core.Character{}).
		Where("id = ? AND owner IS NOT DISTINCT FROM ?", character.ID, expected).
		Updates(map[string]any{
			"name":  character.Name,
			"owner": character.Owner,
		})
	if result.Error != nil {
		tx.Rollback()
		if core.IsIntegrityViolation(result.Error) {
			return core.Character{}, core.NewErrorConflict()
		}
		span.RecordError(result.Error)
		return core.Character{}, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return core.Character{}, core.NewErrorConflict()
	}

	err := tx.Commit().Error
	if err != nil {
		if core.IsIntegrityViolation(err) {
			return core.Character{}, core.NewErrorConflict()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

// Count returns the number of characters
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Character{}).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	return count, nil
}
