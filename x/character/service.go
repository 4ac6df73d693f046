package character

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/charsheet/core"
)

type service struct {
	repository Repository
	identity   core.IdentityService
	permission core.PermissionService
}

// NewService creates a new character service
func NewService(repository Repository, identity core.IdentityService, permission core.PermissionService) core.CharacterService {
	return &service{repository, identity, permission}
}

// member resolves the caller's membership on the server, admin flag included.
// Not being a member is Forbidden.
func (s *service) member(ctx context.Context, server string, user core.User) (core.Member, error) {
	member, err := s.identity.ResolveMember(ctx, server, user.ID)
	if err != nil {
		if core.IsNotFound(err) {
			return core.Member{}, core.NewErrorPermissionDenied()
		}
		return core.Member{}, err
	}

	admin, err := s.permission.IsAdminInGuild(ctx, server, member)
	if err != nil {
		return core.Member{}, err
	}
	member.Admin = admin

	return member, nil
}

// Authorize loads a character on behalf of the caller.
// A missing character is Forbidden so ids cannot be probed.
// DM characters are only visible to admins. With secure the caller must also own the
// character, or be an admin when it belongs to the DM.
func (s *service) Authorize(ctx context.Context, token string, characterID uint, secure bool) (core.User, core.Member, core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Authorize")
	defer span.End()

	span.SetAttributes(attribute.Int("characterID", int(characterID)), attribute.Bool("secure", secure))

	user, err := s.identity.ResolveCaller(ctx, token)
	if err != nil {
		span.RecordError(err)
		return core.User{}, core.Member{}, core.Character{}, err
	}

	character, err := s.repository.Get(ctx, characterID)
	if err != nil {
		if core.IsNotFound(err) {
			return core.User{}, core.Member{}, core.Character{}, core.NewErrorPermissionDenied()
		}
		span.RecordError(err)
		return core.User{}, core.Member{}, core.Character{}, err
	}

	member, err := s.member(ctx, character.Server, user)
	if err != nil {
		span.RecordError(err)
		return core.User{}, core.Member{}, core.Character{}, err
	}

	if secure && !character.IsOwnedBy(user.ID) && !(character.IsDM() && member.Admin) {
		return core.User{}, core.Member{}, core.Character{}, core.NewErrorPermissionDenied()
	}

	if character.IsDM() && !member.Admin {
		return core.User{}, core.Member{}, core.Character{}, core.NewErrorPermissionDenied()
	}

	character.Own = character.IsOwnedBy(user.ID)
	return user, member, character, nil
}

// List returns the characters of a server. DM characters are hidden from non-admins.
func (s *service) List(ctx context.Context, token, server string) ([]core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.List")
	defer span.End()

	user, err := s.identity.ResolveCaller(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	member, err := s.member(ctx, server, user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	characters, err := s.repository.ListByServer(ctx, server, member.Admin)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	for i := range characters {
		characters[i].Own = characters[i].IsOwnedBy(user.ID)
	}

	return characters, nil
}

// Create creates a character owned by the caller
func (s *service) Create(ctx context.Context, token, server, name string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Create")
	defer span.End()

	if name == "" {
		return core.Character{}, core.NewErrorBadRequest("name is required")
	}

	user, err := s.identity.ResolveCaller(ctx, token)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	_, err = s.member(ctx, server, user)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	owner := user.ID
	created, err := s.repository.Create(ctx, core.Character{
		Name:   name,
		Server: server,
		Owner:  &owner,
	})
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	slog.InfoContext(ctx, "character created",
		slog.Uint64("id", uint64(created.ID)),
		slog.String("server", server),
		slog.String("owner", owner),
	)

	created.Own = true
	return created, nil
}

// Mine returns the caller's character on the server
func (s *service) Mine(ctx context.Context, token, server string) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Mine")
	defer span.End()

	user, err := s.identity.ResolveCaller(ctx, token)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	_, err = s.member(ctx, server, user)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	character, err := s.repository.FindByOwner(ctx, server, user.ID)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	character.Own = true
	return character, nil
}

func (s *service) Get(ctx context.Context, token string, id uint) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Get")
	defer span.End()

	_, _, character, err := s.Authorize(ctx, token, id, false)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	return character, nil
}

// Update renames a character and/or moves it between owners.
// Every part of the patch is checked before anything is written.
func (s *service) Update(ctx context.Context, token string, id uint, patch core.CharacterPatch) (core.Character, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Update")
	defer span.End()

	user, err := s.identity.ResolveCaller(ctx, token)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	character, err := s.repository.Get(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			return core.Character{}, core.NewErrorPermissionDenied()
		}
		span.RecordError(err)
		return core.Character{}, err
	}

	member, err := s.member(ctx, character.Server, user)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	next := character
	release := false

	if patch.Name != nil {
		if *patch.Name == "" {
			return core.Character{}, core.NewErrorBadRequest("name must not be empty")
		}
		if character.IsDM() {
			if !member.Admin {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
		} else if !character.IsOwnedBy(user.ID) {
			return core.Character{}, core.NewErrorPermissionDenied()
		}
		next.Name = *patch.Name
	}

	if patch.User != nil {
		switch *patch.User {
		case core.OwnerTargetNull:
			if !character.IsOwnedBy(user.ID) && !character.IsDM() {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
			if !member.Joined() {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
			if character.IsDM() && !member.Admin {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
			next.Owner = nil
		case core.OwnerTargetMe:
			if !character.IsUnowned() || !member.Joined() {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
			owner := user.ID
			next.Owner = &owner
			release = true
		case core.OwnerTargetDM:
			if !character.IsUnowned() && !character.IsOwnedBy(user.ID) {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
			if !member.Admin {
				return core.Character{}, core.NewErrorPermissionDenied()
			}
			owner := core.OwnerDM
			next.Owner = &owner
		default:
			return core.Character{}, core.NewErrorBadRequest("unknown user target %q", *patch.User)
		}
	}

	if patch.Name == nil && patch.User == nil {
		character.Own = character.IsOwnedBy(user.ID)
		return character, nil
	}

	updated, err := s.repository.Update(ctx, next, character.Owner, release)
	if err != nil {
		span.RecordError(err)
		return core.Character{}, err
	}

	updated.Own = updated.IsOwnedBy(user.ID)
	return updated, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Character.Service.Count")
	defer span.End()

	return s.repository.Count(ctx)
}
