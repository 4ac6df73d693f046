package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/totegamma/charsheet/core"
	"github.com/totegamma/charsheet/core/mock"
	"github.com/totegamma/charsheet/x/character/mock"
)

const (
	server = "42"
	alice  = "1001"
	bob    = "1002"
)

func ptr(s string) *string {
	return &s
}

func setup(ctrl *gomock.Controller, caller string, admin bool) (*mock_character.MockRepository, core.CharacterService) {
	mockRepo := mock_character.NewMockRepository(ctrl)

	mockIdentity := mock_core.NewMockIdentityService(ctrl)
	mockIdentity.EXPECT().ResolveCaller(gomock.Any(), "token").Return(core.User{ID: caller}, nil).AnyTimes()
	mockIdentity.EXPECT().ResolveMember(gomock.Any(), server, caller).Return(core.Member{User: core.User{ID: caller}}, nil).AnyTimes()

	mockPermission := mock_core.NewMockPermissionService(ctrl)
	mockPermission.EXPECT().IsAdminInGuild(gomock.Any(), server, gomock.Any()).Return(admin, nil).AnyTimes()

	return mockRepo, NewService(mockRepo, mockIdentity, mockPermission)
}

func passthrough(ctx context.Context, character core.Character, expected *string, release bool) (core.Character, error) {
	return character, nil
}

func TestAuthorizeMissingCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(7)).Return(core.Character{}, core.NewErrorNotFound())

	_, _, _, err := service.Authorize(context.Background(), "token", 7, false)
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestAuthorizeNotMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Server: server}, nil)

	mockIdentity := mock_core.NewMockIdentityService(ctrl)
	mockIdentity.EXPECT().ResolveCaller(gomock.Any(), "token").Return(core.User{ID: alice}, nil)
	mockIdentity.EXPECT().ResolveMember(gomock.Any(), server, alice).Return(core.Member{}, core.NewErrorNotFound())

	service := NewService(mockRepo, mockIdentity, mock_core.NewMockPermissionService(ctrl))

	_, _, _, err := service.Authorize(context.Background(), "token", 1, false)
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestAuthorizeUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIdentity := mock_core.NewMockIdentityService(ctrl)
	mockIdentity.EXPECT().ResolveCaller(gomock.Any(), "").Return(core.User{}, core.NewErrorUnauthorized())

	service := NewService(mock_character.NewMockRepository(ctrl), mockIdentity, mock_core.NewMockPermissionService(ctrl))

	_, _, _, err := service.Authorize(context.Background(), "", 1, false)
	assert.ErrorIs(t, err, core.ErrorUnauthorized{})
}

func TestAuthorizeSecure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Server: server, Owner: ptr(alice)}, nil).AnyTimes()
	mockRepo.EXPECT().Get(gomock.Any(), uint(2)).Return(core.Character{ID: 2, Server: server, Owner: ptr(bob)}, nil).AnyTimes()
	mockRepo.EXPECT().Get(gomock.Any(), uint(3)).Return(core.Character{ID: 3, Server: server}, nil).AnyTimes()

	ctx := context.Background()

	_, _, character, err := service.Authorize(ctx, "token", 1, true)
	if assert.NoError(t, err) {
		assert.True(t, character.Own)
	}

	_, _, character, err = service.Authorize(ctx, "token", 2, false)
	if assert.NoError(t, err) {
		assert.False(t, character.Own)
	}

	_, _, _, err = service.Authorize(ctx, "token", 2, true)
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})

	_, _, _, err = service.Authorize(ctx, "token", 3, false)
	assert.NoError(t, err)

	_, _, _, err = service.Authorize(ctx, "token", 3, true)
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestAuthorizeDMCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dm := core.Character{ID: 5, Server: server, Owner: ptr(core.OwnerDM)}

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(5)).Return(dm, nil)

	_, _, _, err := service.Authorize(context.Background(), "token", 5, false)
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})

	adminRepo, adminService := setup(ctrl, bob, true)
	adminRepo.EXPECT().Get(gomock.Any(), uint(5)).Return(dm, nil)

	_, member, character, err := adminService.Authorize(context.Background(), "token", 5, true)
	if assert.NoError(t, err) {
		assert.True(t, member.Admin)
		assert.False(t, character.Own)
	}
}

func TestClaimReleasesPrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(2)).Return(core.Character{ID: 2, Name: "B", Server: server}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), core.Character{ID: 2, Name: "B", Server: server, Owner: ptr(alice)}, gomock.Nil(), true).
		DoAndReturn(passthrough)

	updated, err := service.Update(context.Background(), "token", 2, core.CharacterPatch{User: ptr(core.OwnerTargetMe)})
	if assert.NoError(t, err) {
		assert.True(t, updated.IsOwnedBy(alice))
		assert.True(t, updated.Own)
	}
}

func TestClaimOwnedCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, true)
	mockRepo.EXPECT().Get(gomock.Any(), uint(2)).Return(core.Character{ID: 2, Server: server, Owner: ptr(bob)}, nil)

	_, err := service.Update(context.Background(), "token", 2, core.CharacterPatch{User: ptr(core.OwnerTargetMe)})
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestUnclaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Server: server, Owner: ptr(alice)}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), core.Character{ID: 1, Server: server}, ptr(alice), false).
		DoAndReturn(passthrough)

	updated, err := service.Update(context.Background(), "token", 1, core.CharacterPatch{User: ptr(core.OwnerTargetNull)})
	if assert.NoError(t, err) {
		assert.True(t, updated.IsUnowned())
		assert.False(t, updated.Own)
	}
}

func TestUnclaimDMCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dm := core.Character{ID: 5, Server: server, Owner: ptr(core.OwnerDM)}

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(5)).Return(dm, nil)

	_, err := service.Update(context.Background(), "token", 5, core.CharacterPatch{User: ptr(core.OwnerTargetNull)})
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})

	adminRepo, adminService := setup(ctrl, bob, true)
	adminRepo.EXPECT().Get(gomock.Any(), uint(5)).Return(dm, nil)
	adminRepo.EXPECT().
		Update(gomock.Any(), core.Character{ID: 5, Server: server}, ptr(core.OwnerDM), false).
		DoAndReturn(passthrough)

	updated, err := adminService.Update(context.Background(), "token", 5, core.CharacterPatch{User: ptr(core.OwnerTargetNull)})
	if assert.NoError(t, err) {
		assert.True(t, updated.IsUnowned())
	}
}

func TestUnclaimOthersCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, true)
	mockRepo.EXPECT().Get(gomock.Any(), uint(2)).Return(core.Character{ID: 2, Server: server, Owner: ptr(bob)}, nil)

	_, err := service.Update(context.Background(), "token", 2, core.CharacterPatch{User: ptr(core.OwnerTargetNull)})
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestAssignDM(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Server: server, Owner: ptr(alice)}, nil)

	_, err := service.Update(context.Background(), "token", 1, core.CharacterPatch{User: ptr(core.OwnerTargetDM)})
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})

	adminRepo, adminService := setup(ctrl, alice, true)
	adminRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Server: server, Owner: ptr(alice)}, nil)
	adminRepo.EXPECT().
		Update(gomock.Any(), core.Character{ID: 1, Server: server, Owner: ptr(core.OwnerDM)}, ptr(alice), false).
		DoAndReturn(passthrough)

	updated, err := adminService.Update(context.Background(), "token", 1, core.CharacterPatch{User: ptr(core.OwnerTargetDM)})
	if assert.NoError(t, err) {
		assert.True(t, updated.IsDM())
	}
}

func TestRename(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Name: "Old", Server: server, Owner: ptr(alice)}, nil).AnyTimes()
	mockRepo.EXPECT().Get(gomock.Any(), uint(2)).Return(core.Character{ID: 2, Name: "Theirs", Server: server, Owner: ptr(bob)}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), core.Character{ID: 1, Name: "New", Server: server, Owner: ptr(alice)}, ptr(alice), false).
		DoAndReturn(passthrough)

	ctx := context.Background()

	updated, err := service.Update(ctx, "token", 1, core.CharacterPatch{Name: ptr("New")})
	if assert.NoError(t, err) {
		assert.Equal(t, "New", updated.Name)
	}

	_, err = service.Update(ctx, "token", 1, core.CharacterPatch{Name: ptr("")})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})

	_, err = service.Update(ctx, "token", 2, core.CharacterPatch{Name: ptr("Mine now")})
	assert.ErrorIs(t, err, core.ErrorPermissionDenied{})
}

func TestUpdateValidatesBeforeWriting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no Update expectation: any write fails the test
	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(1)).Return(core.Character{ID: 1, Name: "Old", Server: server, Owner: ptr(alice)}, nil)

	_, err := service.Update(context.Background(), "token", 1, core.CharacterPatch{Name: ptr("New"), User: ptr("somebody")})
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestUpdateConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().Get(gomock.Any(), uint(2)).Return(core.Character{ID: 2, Server: server}, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Nil(), true).Return(core.Character{}, core.NewErrorConflict())

	_, err := service.Update(context.Background(), "token", 2, core.CharacterPatch{User: ptr(core.OwnerTargetMe)})
	assert.ErrorIs(t, err, core.ErrorConflict{})
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().ListByServer(gomock.Any(), server, false).Return([]core.Character{
		{ID: 1, Name: "A", Server: server, Owner: ptr(alice)},
		{ID: 2, Name: "B", Server: server},
	}, nil)

	characters, err := service.List(context.Background(), "token", server)
	if assert.NoError(t, err) && assert.Len(t, characters, 2) {
		assert.True(t, characters[0].Own)
		assert.False(t, characters[1].Own)
	}
}

func TestCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().
		Create(gomock.Any(), core.Character{Name: "Aria", Server: server, Owner: ptr(alice)}).
		Return(core.Character{ID: 9, Name: "Aria", Server: server, Owner: ptr(alice)}, nil)

	created, err := service.Create(context.Background(), "token", server, "Aria")
	if assert.NoError(t, err) {
		assert.Equal(t, uint(9), created.ID)
		assert.True(t, created.Own)
	}

	_, err = service.Create(context.Background(), "token", server, "")
	assert.ErrorAs(t, err, &core.ErrorBadRequest{})
}

func TestMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo, service := setup(ctrl, alice, false)
	mockRepo.EXPECT().FindByOwner(gomock.Any(), server, alice).Return(core.Character{}, core.NewErrorNotFound())

	_, err := service.Mine(context.Background(), "token", server)
	assert.ErrorIs(t, err, core.ErrorNotFound{})
}
