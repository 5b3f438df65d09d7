// Package session owns the client-side session state: the opaque bearer
// token and the normalized user record derived from the login response.
// State is hydrated from durable storage at startup and mutated only by
// Login and Logout; Register never touches it.
package session

import (
	"fmt"
)

// API is the subset of the server client the session store needs
type API interface {
	Login(username, password string) (map[string]any, error)
	Register(username, email, password string) error
}

// Store holds the current credential and session user. It is constructed
// per command invocation and hydrated from storage; it is not safe for
// concurrent use and does not need to be.
type Store struct {
	api     API
	storage Storage

	token string
	user  *SessionUser
}

// New creates a session store backed by the given API client and storage
func New(api API, storage Storage) *Store {
	return &Store{api: api, storage: storage}
}

// Hydrate loads persisted state. Token and user are read independently;
// a corrupt or missing user record never fails hydration, so a token
// without a user is a valid intermediate state.
func (s *Store) Hydrate() error {
	token, err := s.storage.LoadToken()
	if err != nil {
		return err
	}
	s.token = token

	user, err := s.storage.LoadUser()
	if err != nil {
		user = nil
	}
	s.user = user

	return nil
}

// Token returns the current credential, or the empty string
func (s *Store) Token() string {
	return s.token
}

// User returns the current normalized user record, or nil
func (s *Store) User() *SessionUser {
	return s.user
}

// Login authenticates against the server and persists the resulting
// session. A failed call leaves prior state untouched. A 2xx response
// without an extractable token still completes: the normalized user is
// persisted, but no credential is written.
func (s *Store) Login(identifier, secret string) error {
	payload, err := s.api.Login(identifier, secret)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	token := ExtractToken(payload)
	user := NormalizeUser(payload, identifier)

	// Persist before swapping in-memory state
	if token != "" {
		if err := s.storage.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save authentication token: %w", err)
		}
	}
	if err := s.storage.SaveUser(user); err != nil {
		return fmt.Errorf("failed to save user record: %w", err)
	}

	if token != "" {
		s.token = token
	}
	s.user = user

	return nil
}

// Register creates an account. The username is derived when not supplied:
// trimmed value, else the local part of the email, else the raw email.
// Registration never logs the user in.
func (s *Store) Register(email, secret, username string) error {
	uname := DeriveUsername(email, username)

	if err := s.api.Register(uname, email, secret); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	return nil
}

// Logout clears durable storage and in-memory state unconditionally.
// It is idempotent and never fails; a storage error only means the next
// hydration may still find stale entries.
func (s *Store) Logout() {
	_ = s.storage.Clear()
	s.token = ""
	s.user = nil
}
