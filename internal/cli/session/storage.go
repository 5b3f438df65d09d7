package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/itemhub-dev/itemhub/internal/cli/userconfig"
)

const keyringService = "itemhub-cli"

// Storage persists the credential and the session user between runs.
// Both entries are written and cleared together, but read independently:
// a credential can survive without a readable user record, and vice versa.
type Storage interface {
	SaveToken(token string) error
	// LoadToken returns the empty string when no token is stored
	LoadToken() (string, error)
	SaveUser(user *SessionUser) error
	// LoadUser returns (nil, nil) when the stored record is absent,
	// empty or unparseable
	LoadUser() (*SessionUser, error)
	// Clear removes both entries; missing entries are not an error
	Clear() error
}

// keyringStorage is the default Storage: token in the OS keychain, user
// record as a JSON file under the per-user config directory. Entries are
// keyed by server so sessions against different servers don't collide.
type keyringStorage struct {
	serverURL string
}

// NewStorage returns the default Storage bound to a server URL
func NewStorage(serverURL string) Storage {
	return &keyringStorage{serverURL: serverURL}
}

// serverKey flattens a server URL into a storage-safe key
func serverKey(serverURL string) string {
	key := strings.TrimPrefix(serverURL, "https://")
	key = strings.TrimPrefix(key, "http://")
	key = strings.TrimRight(key, "/")
	return strings.NewReplacer("/", "_", ":", "_").Replace(key)
}

func (s *keyringStorage) tokenKey() string {
	return fmt.Sprintf("token-%s", serverKey(s.serverURL))
}

func (s *keyringStorage) userFilePath() (string, error) {
	dir, err := userconfig.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("user-%s.json", serverKey(s.serverURL))), nil
}

func (s *keyringStorage) SaveToken(token string) error {
	if err := keyring.Set(keyringService, s.tokenKey(), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *keyringStorage) LoadToken() (string, error) {
	token, err := keyring.Get(keyringService, s.tokenKey())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (s *keyringStorage) SaveUser(user *SessionUser) error {
	path, err := s.userFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write user record: %w", err)
	}

	return nil
}

func (s *keyringStorage) LoadUser() (*SessionUser, error) {
	path, err := s.userFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Absent or unreadable both mean "no stored user"
		return nil, nil
	}

	return ParseStoredUser(data), nil
}

func (s *keyringStorage) Clear() error {
	if err := keyring.Delete(keyringService, s.tokenKey()); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	path, err := s.userFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete user record: %w", err)
	}

	return nil
}

// ParseStoredUser parses a persisted user record, failing soft: malformed,
// empty, or literal "null"/"undefined" payloads yield nil rather than an
// error, so a corrupt store can never break hydration.
func ParseStoredUser(raw []byte) *SessionUser {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "undefined" {
		return nil
	}

	var user SessionUser
	if err := json.Unmarshal([]byte(trimmed), &user); err != nil {
		return nil
	}

	return &user
}
