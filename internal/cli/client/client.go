package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError represents a non-2xx response from the server
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// Client represents an HTTP client for the Itemhub API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the given server base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// Login authenticates with form-encoded credentials and returns the raw
// decoded response object. The response shape is not contractually fixed
// (token and user fields vary between deployments), so interpretation is
// left to the caller.
func (c *Client) Login(username, password string) (map[string]any, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.httpClient.Post(
		c.baseURL+"/auth/login",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	// UseNumber keeps numeric ids in their canonical wire form
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload, nil
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. The response body is discarded; only the
// status matters to callers, who are expected to log in afterwards.
func (c *Client) Register(username, email, password string) error {
	reqBody := RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(
		c.baseURL+"/auth/register",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}

	return nil
}

// ID tolerates both string and numeric item ids on the wire
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	return fmt.Errorf("unsupported id value: %s", string(b))
}

// Owner represents the embedded owner payload some servers attach to items
type Owner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Item represents an item as returned by the server. Owner information
// arrives in several shapes depending on the deployment, so all of the
// observed fields are kept and resolved through OwnerDisplay.
type Item struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	OwnerID       ID     `json:"owner_id"`
	Owner         *Owner `json:"owner,omitempty"`
	OwnerUsername string `json:"owner_username,omitempty"`
	OwnerEmail    string `json:"owner_email,omitempty"`
}

// OwnerDisplay resolves a human-readable owner label from whichever owner
// field the server happened to populate, in priority order
func (i *Item) OwnerDisplay() string {
	if i.Owner != nil {
		if i.Owner.Username != "" {
			return i.Owner.Username
		}
		if i.Owner.Name != "" {
			return i.Owner.Name
		}
		if i.Owner.Email != "" {
			return i.Owner.Email
		}
	}
	if i.OwnerUsername != "" {
		return i.OwnerUsername
	}
	if i.OwnerEmail != "" {
		return i.OwnerEmail
	}
	return string(i.OwnerID)
}

// ItemRequest represents the create/update body for an item
type ItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListAllItems returns every user's items (admin listing)
func (c *Client) ListAllItems(token string) ([]Item, error) {
	return c.listItems(token, "/items/all")
}

// ListItems returns the items owned by the authenticated user
func (c *Client) ListItems(token string) ([]Item, error) {
	return c.listItems(token, "/items/")
}

func (c *Client) listItems(token, path string) ([]Item, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return items, nil
}

// FetchItems probes the admin listing first and falls back to the scoped
// listing when the server answers 401, 403 or 404. The probe outcome doubles
// as the admin-view signal. Any other failure on the probe is a real error
// and is returned without attempting the fallback.
func (c *Client) FetchItems(token string) ([]Item, bool, error) {
	items, err := c.ListAllItems(token)
	if err == nil {
		return items, true, nil
	}

	if apiErr, ok := err.(*APIError); ok {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			items, err := c.ListItems(token)
			if err != nil {
				return nil, false, err
			}
			return items, false, nil
		}
	}

	return nil, false, err
}

// CreateItem creates a new item
func (c *Client) CreateItem(token, name, description string) (*Item, error) {
	return c.writeItem(token, http.MethodPost, "/items/", name, description)
}

// UpdateItem updates an existing item
func (c *Client) UpdateItem(token string, id ID, name, description string) (*Item, error) {
	return c.writeItem(token, http.MethodPut, "/items/"+string(id), name, description)
}

func (c *Client) writeItem(token, method, path, name, description string) (*Item, error) {
	jsonData, err := json.Marshal(ItemRequest{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readAPIError(resp)
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &item, nil
}

// DeleteItem deletes an item by ID
func (c *Client) DeleteItem(token string, id ID) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/items/"+string(id), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}

	return nil
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
