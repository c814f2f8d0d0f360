package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/ecocart/storefront/internal/identity/domain"
)

// Client talks to the external identity provider over its REST surface and
// caches the signed-in session. One logical session exists at a time.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	session *domain.Identity
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// GetSession returns the cached identity, absent when nobody signed in.
func (c *Client) GetSession(ctx context.Context) (domain.Identity, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return domain.Identity{}, false, nil
	}
	return *c.session, true, nil
}

func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	return c.authenticate(ctx, c.baseURL+"/token?grant_type=password", creds)
}

func (c *Client) SignUp(ctx context.Context, creds domain.Credentials) (domain.Identity, error) {
	return c.authenticate(ctx, c.baseURL+"/signup", creds)
}

func (c *Client) SignOut() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) authenticate(ctx context.Context, url string, creds domain.Credentials) (domain.Identity, error) {
	body, err := json.Marshal(authRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return domain.Identity{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Identity{}, fmt.Errorf("identity provider: status %d", resp.StatusCode)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Identity{}, fmt.Errorf("identity provider: %w", err)
	}
	if out.User.ID == "" {
		return domain.Identity{}, fmt.Errorf("identity provider: empty user id")
	}

	id := domain.Identity{UserID: out.User.ID, Email: out.User.Email}

	c.mu.Lock()
	c.session = &id
	c.mu.Unlock()

	return id, nil
}
