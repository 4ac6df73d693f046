//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
)

type IdentityService interface {
	ResolveCaller(ctx context.Context, token string) (User, error)
	ResolveMember(ctx context.Context, guildID, userID string) (Member, error)
	GetUser(ctx context.Context, userID string) (User, error)
	GetGuild(ctx context.Context, guildID string) (Guild, error)
	IsBotMember(ctx context.Context, guildID string) (bool, error)
	ListGuilds(ctx context.Context, token string) ([]Guild, error)
}

type PermissionService interface {
	IsAdmin(guild Guild, member Member) bool
	IsAdminInGuild(ctx context.Context, guildID string, member Member) (bool, error)
	IsUserAdmin(ctx context.Context, guild Guild, userID string) (bool, error)
}

// CharacterPatch holds the fields of PATCH /characters/:id. Nil means absent.
type CharacterPatch struct {
	Name *string `json:"name"`
	User *string `json:"user"`
}

type CharacterService interface {
	Authorize(ctx context.Context, token string, characterID uint, secure bool) (User, Member, Character, error)

	List(ctx context.Context, token, server string) ([]Character, error)
	Create(ctx context.Context, token, server, name string) (Character, error)
	Mine(ctx context.Context, token, server string) (Character, error)
	Get(ctx context.Context, token string, id uint) (Character, error)
	Update(ctx context.Context, token string, id uint, patch CharacterPatch) (Character, error)
	Count(ctx context.Context) (int64, error)
}
