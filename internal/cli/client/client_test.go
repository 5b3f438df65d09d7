package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin_SendsFormEncodedCredentials(t *testing.T) {
	var gotContentType, gotUsername, gotPassword string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() failed: %v", err)
		}
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok123", "token_type": "bearer", "role": "user"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	payload, err := c.Login("alice", "secret")
	if err != nil {
		t.Fatalf("Login() returned error: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want form-encoded", gotContentType)
	}
	if gotUsername != "alice" || gotPassword != "secret" {
		t.Errorf("credentials = (%q, %q), want (alice, secret)", gotUsername, gotPassword)
	}

	if payload["access_token"] != "tok123" {
		t.Errorf("payload access_token = %v, want tok123", payload["access_token"])
	}
	if payload["role"] != "user" {
		t.Errorf("payload role = %v, want user", payload["role"])
	}
}

func TestLogin_NumericFieldsKeepWireForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "t", "user": {"id": 7}}`))
	}))
	defer server.Close()

	payload, err := New(server.URL).Login("alice", "secret")
	if err != nil {
		t.Fatalf("Login() returned error: %v", err)
	}

	user, ok := payload["user"].(map[string]any)
	if !ok {
		t.Fatalf("user field is %T, want object", payload["user"])
	}
	num, ok := user["id"].(json.Number)
	if !ok {
		t.Fatalf("id field is %T, want json.Number", user["id"])
	}
	if num.String() != "7" {
		t.Errorf("id = %q, want 7", num.String())
	}
}

func TestLogin_ErrorCarriesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid username or password"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Login("alice", "wrong")
	if err == nil {
		t.Fatal("Login() succeeded, want error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
}

func TestRegister_SendsJSONBody(t *testing.T) {
	var got RegisterRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"id": "01ABC", "username": "bob", "email": "bob@x.com"}`))
	}))
	defer server.Close()

	if err := New(server.URL).Register("bob", "bob@x.com", "secret"); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}

	want := RegisterRequest{Username: "bob", Email: "bob@x.com", Password: "secret"}
	if got != want {
		t.Errorf("request body = %+v, want %+v", got, want)
	}
}

func TestFetchItems_AdminProbeSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/all" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", auth)
		}
		w.Write([]byte(`[{"id": "1", "name": "first", "owner_id": "u1"}]`))
	}))
	defer server.Close()

	items, adminView, err := New(server.URL).FetchItems("tok")
	if err != nil {
		t.Fatalf("FetchItems() returned error: %v", err)
	}
	if !adminView {
		t.Error("adminView = false, want true")
	}
	if len(items) != 1 || items[0].Name != "first" {
		t.Errorf("items = %+v, want one item named first", items)
	}
}

func TestFetchItems_FallbackOnDenial(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/items/all":
				w.WriteHeader(status)
			case "/items/":
				w.Write([]byte(`[{"id": "2", "name": "mine", "owner_id": "u2"}]`))
			default:
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
		}))

		items, adminView, err := New(server.URL).FetchItems("tok")
		server.Close()

		if err != nil {
			t.Fatalf("FetchItems() with probe status %d returned error: %v", status, err)
		}
		if adminView {
			t.Errorf("adminView = true with probe status %d, want false", status)
		}
		if len(items) != 1 || items[0].Name != "mine" {
			t.Errorf("items = %+v with probe status %d, want scoped listing", items, status)
		}
	}
}

func TestFetchItems_ServerErrorDoesNotFallBack(t *testing.T) {
	var scopedCalled bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/all":
			w.WriteHeader(http.StatusInternalServerError)
		case "/items/":
			scopedCalled = true
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	_, _, err := New(server.URL).FetchItems("tok")
	if err == nil {
		t.Fatal("FetchItems() succeeded, want error")
	}
	if scopedCalled {
		t.Error("scoped listing was called after a server error probe")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("error = %v, want APIError with status 500", err)
	}
}

func TestFetchItems_FallbackErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/all":
			w.WriteHeader(http.StatusForbidden)
		case "/items/":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	_, adminView, err := New(server.URL).FetchItems("tok")
	if err == nil {
		t.Fatal("FetchItems() succeeded, want error")
	}
	if adminView {
		t.Error("adminView = true, want false")
	}
}

func TestCreateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/items/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body ItemRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if body.Name != "widget" || body.Description != "a widget" {
			t.Errorf("body = %+v", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 3, "name": "widget", "description": "a widget", "owner_id": 9}`))
	}))
	defer server.Close()

	item, err := New(server.URL).CreateItem("tok", "widget", "a widget")
	if err != nil {
		t.Fatalf("CreateItem() returned error: %v", err)
	}
	if item.ID != "3" || item.OwnerID != "9" {
		t.Errorf("numeric ids = (%q, %q), want (3, 9)", item.ID, item.OwnerID)
	}
}

func TestUpdateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/items/abc" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"id": "abc", "name": "renamed", "owner_id": "u1"}`))
	}))
	defer server.Close()

	item, err := New(server.URL).UpdateItem("tok", "abc", "renamed", "")
	if err != nil {
		t.Fatalf("UpdateItem() returned error: %v", err)
	}
	if item.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", item.Name)
	}
}

func TestDeleteItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/items/abc" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := New(server.URL).DeleteItem("tok", "abc"); err != nil {
		t.Fatalf("DeleteItem() returned error: %v", err)
	}
}

func TestSetAuth_OmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var headerPresent bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, headerPresent = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := New(server.URL).ListItems(""); err != nil {
		t.Fatalf("ListItems() returned error: %v", err)
	}
	if headerPresent {
		t.Errorf("Authorization header sent with empty token: %q", gotAuth)
	}
}

func TestOwnerDisplay(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "embedded owner username wins",
			item: Item{OwnerID: "u1", Owner: &Owner{Username: "alice", Email: "a@x.com"}, OwnerUsername: "flat"},
			want: "alice",
		},
		{
			name: "embedded owner name before email",
			item: Item{OwnerID: "u1", Owner: &Owner{Name: "Alice A", Email: "a@x.com"}},
			want: "Alice A",
		},
		{
			name: "embedded owner email",
			item: Item{OwnerID: "u1", Owner: &Owner{Email: "a@x.com"}},
			want: "a@x.com",
		},
		{
			name: "flat owner username",
			item: Item{OwnerID: "u1", OwnerUsername: "alice", OwnerEmail: "a@x.com"},
			want: "alice",
		},
		{
			name: "flat owner email",
			item: Item{OwnerID: "u1", OwnerEmail: "a@x.com"},
			want: "a@x.com",
		},
		{
			name: "owner id last resort",
			item: Item{OwnerID: "u1"},
			want: "u1",
		},
		{
			name: "empty embedded owner falls through",
			item: Item{OwnerID: "u1", Owner: &Owner{}, OwnerUsername: "flat"},
			want: "flat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.OwnerDisplay(); got != tt.want {
				t.Errorf("OwnerDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		raw     string
		want    ID
		wantErr bool
	}{
		{raw: `"abc"`, want: "abc"},
		{raw: `42`, want: "42"},
		{raw: `4.5`, want: "4.5"},
		{raw: `true`, wantErr: true},
		{raw: `{"x": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		var id ID
		err := json.Unmarshal([]byte(tt.raw), &id)
		if tt.wantErr {
			if err == nil {
				t.Errorf("unmarshal %s succeeded, want error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("unmarshal %s failed: %v", tt.raw, err)
			continue
		}
		if id != tt.want {
			t.Errorf("unmarshal %s = %q, want %q", tt.raw, id, tt.want)
		}
	}
}
