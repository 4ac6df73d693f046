//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/charsheet/core"
)

const (
	defaultRetryAfter = 1000 * time.Millisecond
	retryMargin       = 5 * time.Millisecond
)

var tracer = otel.Tracer("client")

var rateLimitRetries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "charsheet_identity_ratelimit_retries_total",
		Help: "requests to the identity provider re-issued after a 429",
	},
	[]string{"endpoint"},
)

// Client talks to the identity provider.
// Requests on behalf of a user carry the user's bearer token, the rest use the bot token.
type Client interface {
	GetCurrentUser(ctx context.Context, token string) (core.User, error)
	GetCurrentUserGuilds(ctx context.Context, token string) ([]core.Guild, error)
	GetUser(ctx context.Context, id string) (core.User, error)
	GetGuild(ctx context.Context, id string) (core.Guild, error)
	GetMember(ctx context.Context, guildID, userID string) (core.Member, error)
}

type client struct {
	baseURL  string
	botToken string
	http     *http.Client
}

func NewClient(config core.Config) Client {
	return &client{
		baseURL:  strings.TrimRight(config.Discord.APIBase, "/"),
		botToken: config.Discord.BotToken,
		http: &http.Client{
			Timeout:   config.Discord.RequestTimeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *client) GetCurrentUser(ctx context.Context, token string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "Client.GetCurrentUser")
	defer span.End()

	var user core.User
	err := c.get(ctx, "users/@me", "/users/@me", "Bearer "+token, &user)
	if err != nil {
		span.RecordError(err)
		return core.User{}, err
	}

	return user, nil
}

func (c *client) GetCurrentUserGuilds(ctx context.Context, token string) ([]core.Guild, error) {
	ctx, span := tracer.Start(ctx, "Client.GetCurrentUserGuilds")
	defer span.End()

	var guilds []core.Guild
	err := c.get(ctx, "users/@me/guilds", "/users/@me/guilds", "Bearer "+token, &guilds)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return guilds, nil
}

func (c *client) GetUser(ctx context.Context, id string) (core.User, error) {
	ctx, span := tracer.Start(ctx, "Client.GetUser")
	defer span.End()

	var user core.User
	err := c.get(ctx, "users", "/users/"+url.PathEscape(id), "Bot "+c.botToken, &user)
	if err != nil {
		span.RecordError(err)
		return core.User{}, err
	}

	return user, nil
}

func (c *client) GetGuild(ctx context.Context, id string) (core.Guild, error) {
	ctx, span := tracer.Start(ctx, "Client.GetGuild")
	defer span.End()

	var guild core.Guild
	err := c.get(ctx, "guilds", "/guilds/"+url.PathEscape(id), "Bot "+c.botToken, &guild)
	if err != nil {
		span.RecordError(err)
		return core.Guild{}, err
	}

	return guild, nil
}

func (c *client) GetMember(ctx context.Context, guildID, userID string) (core.Member, error) {
	ctx, span := tracer.Start(ctx, "Client.GetMember")
	defer span.End()

	var member core.Member
	path := "/guilds/" + url.PathEscape(guildID) + "/members/" + url.PathEscape(userID)
	err := c.get(ctx, "guilds/members", path, "Bot "+c.botToken, &member)
	if err != nil {
		span.RecordError(err)
		return core.Member{}, err
	}

	return member, nil
}

type rateLimited struct {
	RetryAfter *float64 `json:"retry_after"` // milliseconds
}

// retryAfter reads the suggested wait from a 429 body
func retryAfter(body []byte) time.Duration {
	var limited rateLimited
	wait := defaultRetryAfter
	if err := json.Unmarshal(body, &limited); err == nil && limited.RetryAfter != nil {
		wait = time.Duration(*limited.RetryAfter * float64(time.Millisecond))
	}
	return wait + retryMargin
}

// get issues a GET and decodes the 2xx body into out.
// A 429 is waited out and re-issued until the provider answers with anything else.
func (c *client) get(ctx context.Context, endpoint, path, authorization string, out any) error {
	ctx, span := tracer.Start(ctx, "Client.get")
	defer span.End()

	span.SetAttributes(attribute.String("endpoint", endpoint))

	var wait time.Duration
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		return wait, false
	})

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", authorization)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return errors.Wrap(err, "identity provider request failed")
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "failed to read identity provider response")
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait = retryAfter(body)
			rateLimitRetries.WithLabelValues(endpoint).Inc()
			span.AddEvent("rate limited", trace.WithAttributes(attribute.Int64("waitMs", wait.Milliseconds())))
			return retry.RetryableError(core.NewErrorUpstream(resp.StatusCode, path))
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return core.NewErrorUpstream(resp.StatusCode, path)
		}

		return nil
	})
	if err != nil {
		return err
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return errors.Wrap(err, "failed to decode identity provider response")
	}

	return nil
}
