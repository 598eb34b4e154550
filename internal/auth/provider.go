package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Identity is what the OAuth provider returns for a valid session id.
type Identity struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// ProviderClient exchanges an OAuth callback session id for the user's
// identity and an opaque session token.
type ProviderClient struct {
	url  string
	http *http.Client
}

func NewProviderClient(url string) *ProviderClient {
	return &ProviderClient{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Exchange calls the provider's session-data endpoint.
func (c *ProviderClient) Exchange(ctx context.Context, sessionID string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("auth provider rejected session id (status %d)", resp.StatusCode)
	}
	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("auth provider response: %w", err)
	}
	if id.Email == "" || id.SessionToken == "" {
		return Identity{}, fmt.Errorf("auth provider response missing email or session token")
	}
	return id, nil
}
