// Package permission derives the admin flag of a guild member
package permission

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/totegamma/charsheet/core"
)

var tracer = otel.Tracer("permission")

type service struct {
	identity core.IdentityService
}

// NewService creates a new permission service
func NewService(identity core.IdentityService) core.PermissionService {
	return &service{identity}
}

// IsAdmin reports whether the member owns the guild or holds a role with the manage-roles bit
func (s *service) IsAdmin(guild core.Guild, member core.Member) bool {
	if member.User.ID != "" && member.User.ID == guild.OwnerID {
		return true
	}

	roles := make(map[string]core.Permissions, len(guild.Roles))
	for _, role := range guild.Roles {
		roles[role.ID] = role.Permissions
	}

	for _, id := range member.Roles {
		if perms, ok := roles[id]; ok && perms.Has(core.PermissionManageRoles) {
			return true
		}
	}

	return false
}

func (s *service) IsAdminInGuild(ctx context.Context, guildID string, member core.Member) (bool, error) {
	ctx, span := tracer.Start(ctx, "Permission.Service.IsAdminInGuild")
	defer span.End()

	guild, err := s.identity.GetGuild(ctx, guildID)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	return s.IsAdmin(guild, member), nil
}

func (s *service) IsUserAdmin(ctx context.Context, guild core.Guild, userID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Permission.Service.IsUserAdmin")
	defer span.End()

	if userID != "" && userID == guild.OwnerID {
		return true, nil
	}

	member, err := s.identity.ResolveMember(ctx, guild.ID, userID)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	return s.IsAdmin(guild, member), nil
}
