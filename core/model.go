package core

import (
	"encoding/json"
	"strconv"
	"time"
)

// User is an identity resolved from the provider
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator,omitempty"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
}

// Member is a user's role assignment within one guild.
// Admin is derived, never stored.
type Member struct {
	User     User      `json:"user"`
	Nick     *string   `json:"nick,omitempty"`
	Roles    []string  `json:"roles"`
	JoinedAt time.Time `json:"joined_at"`
	Admin    bool      `json:"admin"`
}

// Joined reports whether the member record was actually resolved
func (m Member) Joined() bool {
	return m.User.ID != ""
}

// Permissions is a role permission bitmask.
// The provider serializes it as a decimal string.
type Permissions int64

func (p *Permissions) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*p = Permissions(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Permissions(v)
	return nil
}

func (p Permissions) Has(bit int64) bool {
	return int64(p)&bit != 0
}

type Role struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Permissions Permissions `json:"permissions"`
}

// Guild is a server managed by the provider
type Guild struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
	Owner   bool   `json:"owner,omitempty"`
	Roles   []Role `json:"roles,omitempty"`
}

// UserWithMember is the user object extended with guild membership, as served by /user/:id?server=
type UserWithMember struct {
	User
	Nick     *string    `json:"nick,omitempty"`
	Roles    []string   `json:"roles,omitempty"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
	Admin    *bool      `json:"admin,omitempty"`
}
