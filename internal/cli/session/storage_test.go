package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func newTestStorage(t *testing.T, serverURL string) Storage {
	t.Helper()
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())
	return NewStorage(serverURL)
}

func TestStorage_TokenRoundTrip(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8000")

	token, err := storage.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() on empty store returned error: %v", err)
	}
	if token != "" {
		t.Errorf("LoadToken() on empty store = %q, want empty", token)
	}

	if err := storage.SaveToken("tok123"); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	token, err = storage.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() returned error: %v", err)
	}
	if token != "tok123" {
		t.Errorf("LoadToken() = %q, want tok123", token)
	}
}

func TestStorage_UserRoundTrip(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8000")

	user, err := storage.LoadUser()
	if err != nil {
		t.Fatalf("LoadUser() on empty store returned error: %v", err)
	}
	if user != nil {
		t.Errorf("LoadUser() on empty store = %+v, want nil", user)
	}

	saved := &SessionUser{ID: "7", Email: "alice", Role: RoleAdmin}
	if err := storage.SaveUser(saved); err != nil {
		t.Fatalf("SaveUser() returned error: %v", err)
	}

	user, err = storage.LoadUser()
	if err != nil {
		t.Fatalf("LoadUser() returned error: %v", err)
	}
	if user == nil || *user != *saved {
		t.Errorf("LoadUser() = %+v, want %+v", user, saved)
	}
}

func TestStorage_Clear(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8000")

	if err := storage.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}
	if err := storage.SaveUser(&SessionUser{ID: "1", Email: "a", Role: RoleUser}); err != nil {
		t.Fatalf("SaveUser() returned error: %v", err)
	}

	if err := storage.Clear(); err != nil {
		t.Fatalf("Clear() returned error: %v", err)
	}

	token, err := storage.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() after clear returned error: %v", err)
	}
	if token != "" {
		t.Errorf("LoadToken() after clear = %q, want empty", token)
	}

	user, err := storage.LoadUser()
	if err != nil {
		t.Fatalf("LoadUser() after clear returned error: %v", err)
	}
	if user != nil {
		t.Errorf("LoadUser() after clear = %+v, want nil", user)
	}

	// Clearing an already-empty store is fine
	if err := storage.Clear(); err != nil {
		t.Errorf("Clear() on empty store returned error: %v", err)
	}
}

func TestStorage_ServersDoNotCollide(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	first := NewStorage("http://localhost:8000")
	second := NewStorage("https://api.example.com")

	if err := first.SaveToken("tok-local"); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}
	if err := second.SaveToken("tok-remote"); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	token, err := first.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() returned error: %v", err)
	}
	if token != "tok-local" {
		t.Errorf("first server token = %q, want tok-local", token)
	}

	token, err = second.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() returned error: %v", err)
	}
	if token != "tok-remote" {
		t.Errorf("second server token = %q, want tok-remote", token)
	}
}

func TestStorage_UserFileLocation(t *testing.T) {
	keyring.MockInit()
	home := t.TempDir()
	t.Setenv("HOME", home)

	storage := NewStorage("http://localhost:8000/")
	if err := storage.SaveUser(&SessionUser{ID: "1", Email: "a", Role: RoleUser}); err != nil {
		t.Fatalf("SaveUser() returned error: %v", err)
	}

	path := filepath.Join(home, ".config", "itemhub", "user-localhost_8000.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("user record not found at %s: %v", path, err)
	}
}

func TestServerKey(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost:8000", "localhost_8000"},
		{"http://localhost:8000/", "localhost_8000"},
		{"https://api.example.com", "api.example.com"},
		{"https://example.com/api/v1", "example.com_api_v1"},
	}

	for _, tt := range tests {
		if got := serverKey(tt.url); got != tt.want {
			t.Errorf("serverKey(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestParseStoredUser(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *SessionUser
	}{
		{name: "valid record", raw: `{"id":"7","email":"alice","role":"admin"}`, want: &SessionUser{ID: "7", Email: "alice", Role: RoleAdmin}},
		{name: "empty", raw: "", want: nil},
		{name: "whitespace", raw: "  \n ", want: nil},
		{name: "literal null", raw: "null", want: nil},
		{name: "literal undefined", raw: "undefined", want: nil},
		{name: "malformed json", raw: "{not json", want: nil},
		{name: "wrong type", raw: `[1,2]`, want: nil},
		{name: "extra fields ignored", raw: `{"id":"7","email":"a","role":"user","stale":true}`, want: &SessionUser{ID: "7", Email: "a", Role: RoleUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStoredUser([]byte(tt.raw))
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseStoredUser(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ParseStoredUser(%q) = %+v, want %+v", tt.raw, *got, *tt.want)
			}
		})
	}
}
