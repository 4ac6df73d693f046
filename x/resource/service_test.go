package resource_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/core/mock"
	"github.com/totegamma/charsheet/x/resource"
	"github.com/totegamma/charsheet/x/resource/mock"
)

var sheet = core.Character{ID: 1, Name: "Aria", Server: "42"}

func TestUpdateRejectsBadTokenWithoutWriting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), true).Return(core.User{}, core.Member{}, sheet, nil)

	// no repository expectations: nothing may be read or written
	mockRepo := mock_resource.NewMockRepository[core.Spell](ctrl)

	service := resource.NewService[core.Spell](mockRepo, mockCharacter, resource.SpellKind)

	_, err := service.Update(context.Background(), "token", 1, 3, map[string]any{
		"name":     "Shield",
		"prepared": "maybe",
	})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), true).Return(core.User{}, core.Member{}, sheet, nil)

	mockRepo := mock_resource.NewMockRepository[core.Spell](ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1), uint(3)).Return(core.Spell{ID: 3, CharacterID: 1, Name: "Shield"}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), uint(1), uint(3), map[string]any{"prepared": true, "description": nil, "level": int64(1)}).
		Return(core.Spell{ID: 3, CharacterID: 1, Name: "Shield", Level: 1, Prepared: true}, nil)

	service := resource.NewService[core.Spell](mockRepo, mockCharacter, resource.SpellKind)

	updated, err := service.Update(context.Background(), "token", 1, 3, map[string]any{
		"prepared":    "1",
		"description": "",
		"level":       json.Number("1"),
		"id":          json.Number("99"),
	})
	if assert.NoError(t, err) {
		assert.True(t, updated.Prepared)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), true).Return(core.User{}, core.Member{}, sheet, nil)

	mockRepo := mock_resource.NewMockRepository[core.Item](ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1), uint(3)).Return(core.Item{}, core.NewErrorNotFound())

	service := resource.NewService[core.Item](mockRepo, mockCharacter, resource.ItemKind)

	_, err := service.Update(context.Background(), "token", 1, 3, map[string]any{"number": "2"})
	assert.ErrorIs(t, err, core.ErrorNotFound{})
}

func TestCreateSkipsAbsentAndNull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), true).Return(core.User{}, core.Member{}, sheet, nil)

	mockRepo := mock_resource.NewMockRepository[core.Resource](ctrl)
	mockRepo.EXPECT().
		Create(gomock.Any(), uint(1), map[string]any{"name": "Ki", "max": int64(3), "recover": "short"}).
		Return(core.Resource{ID: 5, CharacterID: 1, Name: "Ki", Max: 3, Recover: core.RestShort}, nil)

	service := resource.NewService[core.Resource](mockRepo, mockCharacter, resource.ResourceKind)

	created, err := service.Create(context.Background(), "token", 1, map[string]any{
		"name":    "Ki",
		"max":     json.Number("3"),
		"current": nil,
		"recover": "short",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, uint(5), created.ID)
	}
}

func TestCreateRequiresOwnership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), true).Return(core.User{}, core.Member{}, core.Character{}, core.NewErrorPermissionDenied())

	mockRepo := mock_resource.NewMockRepository[core.Variable](ctrl)
	service := resource.NewService[core.Variable](mockRepo, mockCharacter, resource.VariableKind)

	_, err := service.Create(context.Background(), "token", 1, map[string]any{"name": "str", "value": "3"})
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestListIsReadOnlyGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), false).Return(core.User{}, core.Member{}, sheet, nil)

	mockRepo := mock_resource.NewMockRepository[core.Roll](ctrl)
	mockRepo.EXPECT().List(gomock.Any(), uint(1)).Return([]core.Roll{{ID: 1, CharacterID: 1, Name: "attack", Expression: "1d20+5"}}, nil)

	service := resource.NewService[core.Roll](mockRepo, mockCharacter, resource.RollKind)

	rolls, err := service.List(context.Background(), "token", 1)
	if assert.NoError(t, err) {
		assert.Len(t, rolls, 1)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCharacter := mock_core.NewMockCharacterService(ctrl)
	mockCharacter.EXPECT().Authorize(gomock.Any(), "token", uint(1), true).Return(core.User{}, core.Member{}, sheet, nil).Times(2)

	mockRepo := mock_resource.NewMockRepository[core.Item](ctrl)
	mockRepo.EXPECT().Delete(gomock.Any(), uint(1), uint(404)).Return(nil).Times(2)

	service := resource.NewService[core.Item](mockRepo, mockCharacter, resource.ItemKind)

	assert.NoError(t, service.Delete(context.Background(), "token", 1, 404))
	assert.NoError(t, service.Delete(context.Background(), "token", 1, 404))
}
