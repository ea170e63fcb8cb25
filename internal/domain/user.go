package domain

import (
	"encoding/json"
	"fmt"
)

// Role is a flat enumeration, not an ordered hierarchy. Ordinals are
// persisted in users.type_id and must remain stable.
type Role int

const (
	RoleExternal Role = 1
	RoleInternal Role = 2
	RoleManager  Role = 3
	RoleAdmin    Role = 4
)

func (r Role) String() string {
	switch r {
	case RoleExternal:
		return "external"
	case RoleInternal:
		return "internal"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	return r >= RoleExternal && r <= RoleAdmin
}

type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Type     Role   `json:"type"`
}

// Serialize produces the canonical single-object JSON form, password
// included, so that ParseUser(u.Serialize()) round-trips exactly.
func (u User) Serialize() (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", Internalf("failed to serialize user: %v", err)
	}
	return string(data), nil
}

// SerializeRedacted is the listing form: username and role only.
func (u User) SerializeRedacted() (string, error) {
	data, err := json.Marshal(struct {
		Username string `json:"username"`
		Type     Role   `json:"type"`
	}{u.Username, u.Type})
	if err != nil {
		return "", Internalf("failed to serialize user: %v", err)
	}
	return string(data), nil
}

func ParseUser(raw string) (User, error) {
	var fields struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
		Type     *Role   `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return User{}, BadRequestf("failed to deserialize user: %v", err)
	}
	if fields.Username == nil || fields.Password == nil || fields.Type == nil {
		return User{}, BadRequest("user requires username, password and type")
	}
	if *fields.Username == "" {
		return User{}, BadRequest("username must not be empty")
	}
	if !fields.Type.Valid() {
		return User{}, BadRequestf("unknown user type %d", *fields.Type)
	}
	return User{Username: *fields.Username, Password: *fields.Password, Type: *fields.Type}, nil
}

var _ fmt.Stringer = Role(0)
