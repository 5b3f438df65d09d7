package session

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role values produced by normalization
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SessionUser is the normalized user record derived once from a login
// response. It is a best-effort projection, not authoritative, and is
// immutable until the next login.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the record carries the admin role
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// firstValue returns the value of the first listed key that is present and
// non-null in m. Presence wins even when the value is empty.
func firstValue(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// coerceString renders a loosely-typed JSON value as a display string
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ExtractToken picks the bearer token out of a login response, checking
// token, access_token and jwt in order. The first present field wins; an
// empty value is returned as-is and handled by the caller.
func ExtractToken(payload map[string]any) string {
	v, ok := firstValue(payload, "token", "access_token", "jwt")
	if !ok {
		return ""
	}
	return coerceString(v)
}

// NormalizeUser projects a loosely-shaped login response into a SessionUser.
// Servers return the user nested under user/profile/account or flattened at
// the top level, with id, email and admin signals under a variety of names.
func NormalizeUser(payload map[string]any, fallbackIdentifier string) *SessionUser {
	candidate := payload
	if v, ok := firstValue(payload, "user", "profile", "account"); ok {
		if m, ok := v.(map[string]any); ok {
			candidate = m
		} else {
			// A present but non-object candidate carries no fields
			candidate = map[string]any{}
		}
	}

	id := ""
	if v, ok := firstValue(candidate, "id", "_id", "user_id", "sub", "uuid"); ok {
		id = coerceString(v)
	} else if fallbackIdentifier != "" {
		id = fallbackIdentifier
	} else {
		id = "me"
	}

	email := ""
	if v, ok := firstValue(candidate, "email", "username", "name"); ok {
		email = coerceString(v)
	} else if fallbackIdentifier != "" {
		email = fallbackIdentifier
	} else {
		email = "user"
	}

	role := RoleUser
	if isAdminPayload(candidate) {
		role = RoleAdmin
	}

	return &SessionUser{
		ID:    id,
		Email: email,
		Role:  role,
	}
}

// isAdminPayload checks the four admin signals: three boolean flags and a
// case-insensitive role string
func isAdminPayload(u map[string]any) bool {
	for _, flag := range []string{"is_superuser", "isAdmin", "is_admin"} {
		if b, ok := u[flag].(bool); ok && b {
			return true
		}
	}
	if r, ok := u["role"].(string); ok && strings.EqualFold(r, RoleAdmin) {
		return true
	}
	return false
}

// DeriveUsername picks the registration username: the trimmed supplied value
// if non-empty, else the local part of the email, else the raw email
func DeriveUsername(email, username string) string {
	if trimmed := strings.TrimSpace(username); trimmed != "" {
		return trimmed
	}
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
