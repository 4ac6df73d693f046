// Package identity resolves callers, members and guilds against the identity provider
package identity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/exp/slices"

	"github.com/totegamma/charsheet/client"
	"github.com/totegamma/charsheet/core"
)

var tracer = otel.Tracer("identity")

type service struct {
	repository Repository
	client     client.Client
	config     core.Config
}

func NewService(repository Repository, client client.Client, config core.Config) core.IdentityService {
	return &service{repository, client, config}
}

// ResolveCaller returns the user the token belongs to
func (s *service) ResolveCaller(ctx context.Context, token string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.ResolveCaller")
	defer span.End()

	if token == "" {
		return core.User{}, core.NewErrorUnauthorized()
	}

	ttl := time.Duration(s.config.Cache.CallerTTL) * time.Second
	if ttl > 0 {
		cached, err := s.repository.GetCaller(ctx, token)
		if err == nil {
			return cached, nil
		}
		if !core.IsNotFound(err) {
			slog.WarnContext(ctx, "caller cache unavailable", slog.String("error", err.Error()))
		}
	}

	user, err := s.client.GetCurrentUser(ctx, token)
	if err != nil {
		var upstream core.ErrorUpstream
		if errors.As(err, &upstream) && upstream.Status == http.StatusUnauthorized {
			return core.User{}, core.NewErrorUnauthorized()
		}
		span.RecordError(err)
		return core.User{}, err
	}

	if user.ID == "" {
		return core.User{}, core.NewErrorUnauthorized()
	}

	if ttl > 0 {
		err = s.repository.SetCaller(ctx, token, user, ttl)
		if err != nil {
			slog.WarnContext(ctx, "failed to cache caller", slog.String("error", err.Error()))
		}
	}

	return user, nil
}

// ResolveMember returns the membership of the user in the guild.
// Admin is left unset; see the permission service.
func (s *service) ResolveMember(ctx context.Context, guildID, userID string) (core.Member, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.ResolveMember")
	defer span.End()

	member, err := s.client.GetMember(ctx, guildID, userID)
	if err != nil {
		if core.IsNotFound(err) {
			return core.Member{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Member{}, err
	}

	return member, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.GetUser")
	defer span.End()

	return s.client.GetUser(ctx, userID)
}

// GetGuild returns the guild, served from cache when possible
func (s *service) GetGuild(ctx context.Context, guildID string) (core.Guild, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.GetGuild")
	defer span.End()

	ttl := time.Duration(s.config.Cache.GuildTTL) * time.Second
	if ttl > 0 {
		cached, err := s.repository.GetGuild(ctx, guildID)
		if err == nil {
			return cached, nil
		}
		if !core.IsNotFound(err) {
			slog.WarnContext(ctx, "guild cache unavailable", slog.String("error", err.Error()))
		}
	}

	guild, err := s.client.GetGuild(ctx, guildID)
	if err != nil {
		span.RecordError(err)
		return core.Guild{}, err
	}

	if ttl > 0 {
		err = s.repository.SetGuild(ctx, guild, ttl)
		if err != nil {
			slog.WarnContext(ctx, "failed to cache guild", slog.String("error", err.Error()))
		}
	}

	return guild, nil
}

// IsBotMember reports whether the bot can see the guild
func (s *service) IsBotMember(ctx context.Context, guildID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.IsBotMember")
	defer span.End()

	_, err := s.GetGuild(ctx, guildID)
	if err != nil {
		var upstream core.ErrorUpstream
		if errors.As(err, &upstream) {
			return false, nil
		}
		span.RecordError(err)
		return false, err
	}

	return true, nil
}

// ListGuilds returns the caller's guilds that the bot is in, sorted by name
func (s *service) ListGuilds(ctx context.Context, token string) ([]core.Guild, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.ListGuilds")
	defer span.End()

	guilds, err := s.client.GetCurrentUserGuilds(ctx, token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := make([]core.Guild, 0, len(guilds))
	for _, guild := range guilds {
		ok, err := s.IsBotMember(ctx, guild.ID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if ok {
			result = append(result, guild)
		}
	}

	slices.SortFunc(result, func(a, b core.Guild) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result, nil
}
