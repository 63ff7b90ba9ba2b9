package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"graspnest.app/api-server/core/config"
)

// KeycloakClient talks to the Keycloak admin and OIDC endpoints over HTTP.
type KeycloakClient struct {
	cfg        config.KeycloakConfig
	httpClient *http.Client
}

func NewKeycloakClient(cfg config.KeycloakConfig, client *http.Client) *KeycloakClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &KeycloakClient{cfg: cfg, httpClient: client}
}

var _ Client = (*KeycloakClient)(nil)

// adminToken obtains a fresh master-realm token for admin API calls.
func (c *KeycloakClient) adminToken(ctx context.Context) (string, error) {
	data := url.Values{}
	data.Set("client_id", c.cfg.AdminClientID)
	data.Set("username", c.cfg.AdminUsername)
	data.Set("password", c.cfg.AdminPassword)
	data.Set("grant_type", "password")

	tokenURL := fmt.Sprintf("%s/realms/master/protocol/openid-connect/token", c.cfg.BaseURL)
	var pair TokenPair
	if err := c.postForm(ctx, tokenURL, data, &pair); err != nil {
		return "", fmt.Errorf("admin token: %w", err)
	}
	return pair.AccessToken, nil
}

func (c *KeycloakClient) CreateUser(ctx context.Context, params CreateUserParams) (string, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]any{
		"username":  params.Username,
		"email":     params.Username,
		"firstName": params.FirstName,
		"lastName":  params.LastName,
		"enabled":   true,
	})
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}

	usersURL := fmt.Sprintf("%s/admin/realms/%s/users", c.cfg.BaseURL, c.cfg.Realm)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, usersURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build create user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create user request: %w", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create user failed: status=%d", resp.StatusCode)
	}

	// Keycloak returns the new user id only via the Location header.
	location := resp.Header.Get("Location")
	idx := strings.LastIndex(location, "/")
	if idx < 0 || idx == len(location)-1 {
		return "", fmt.Errorf("create user: malformed location header %q", location)
	}
	userID := location[idx+1:]

	for _, role := range params.Roles {
		if err := c.assignClientRole(ctx, token, userID, role); err != nil {
			return "", fmt.Errorf("assigning role %q: %w", role, err)
		}
	}

	return userID, nil
}

// assignClientRole maps a client role onto the user. Requires two lookups:
// the client's internal id, then the role representation.
func (c *KeycloakClient) assignClientRole(ctx context.Context, token, userID, role string) error {
	clientsURL := fmt.Sprintf("%s/admin/realms/%s/clients?clientId=%s",
		c.cfg.BaseURL, c.cfg.Realm, url.QueryEscape(c.cfg.ClientID))
	var clients []struct {
		ID string `json:"id"`
	}
	if err := c.getJSON(ctx, clientsURL, token, &clients); err != nil {
		return fmt.Errorf("lookup client: %w", err)
	}
	if len(clients) == 0 {
		return fmt.Errorf("client %q not found in realm", c.cfg.ClientID)
	}
	internalID := clients[0].ID

	roleURL := fmt.Sprintf("%s/admin/realms/%s/clients/%s/roles/%s",
		c.cfg.BaseURL, c.cfg.Realm, internalID, url.PathEscape(role))
	var roleRep struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, roleURL, token, &roleRep); err != nil {
		return fmt.Errorf("lookup role: %w", err)
	}

	body, err := json.Marshal([]any{roleRep})
	if err != nil {
		return fmt.Errorf("encode role mapping: %w", err)
	}

	mappingURL := fmt.Sprintf("%s/admin/realms/%s/users/%s/role-mappings/clients/%s",
		c.cfg.BaseURL, c.cfg.Realm, userID, internalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mappingURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build role mapping request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("role mapping request: %w", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("role mapping failed: status=%d", resp.StatusCode)
	}
	return nil
}

func (c *KeycloakClient) DeleteUser(ctx context.Context, userID string) error {
	token, err := c.adminToken(ctx)
	if err != nil {
		return err
	}

	userURL := fmt.Sprintf("%s/admin/realms/%s/users/%s", c.cfg.BaseURL, c.cfg.Realm, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, userURL, nil)
	if err != nil {
		return fmt.Errorf("build delete user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete user failed: status=%d", resp.StatusCode)
	}
	return nil
}

func (c *KeycloakClient) SendCredentialSetupEmail(ctx context.Context, userID string) error {
	token, err := c.adminToken(ctx)
	if err != nil {
		return err
	}
	return c.executeActionsEmail(ctx, token, userID)
}

func (c *KeycloakClient) SendPasswordResetEmail(ctx context.Context, email string) (bool, error) {
	token, err := c.adminToken(ctx)
	if err != nil {
		return false, err
	}

	usersURL := fmt.Sprintf("%s/admin/realms/%s/users?email=%s",
		c.cfg.BaseURL, c.cfg.Realm, url.QueryEscape(email))
	var users []struct {
		ID string `json:"id"`
	}
	if err := c.getJSON(ctx, usersURL, token, &users); err != nil {
		return false, fmt.Errorf("lookup user by email: %w", err)
	}
	if len(users) == 0 {
		return false, nil
	}

	if err := c.executeActionsEmail(ctx, token, users[0].ID); err != nil {
		return false, err
	}
	return true, nil
}

// executeActionsEmail triggers the provider's UPDATE_PASSWORD email flow.
func (c *KeycloakClient) executeActionsEmail(ctx context.Context, token, userID string) error {
	actionsURL := fmt.Sprintf("%s/admin/realms/%s/users/%s/execute-actions-email?redirect_uri=%s&client_id=%s",
		c.cfg.BaseURL, c.cfg.Realm, userID,
		url.QueryEscape(c.cfg.RedirectURI), url.QueryEscape(c.cfg.ClientID))

	body, err := json.Marshal([]string{"UPDATE_PASSWORD"})
	if err != nil {
		return fmt.Errorf("encode actions: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, actionsURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build actions email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("actions email request: %w", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("actions email failed: status=%d", resp.StatusCode)
	}
	return nil
}

func (c *KeycloakClient) Authenticate(ctx context.Context, username, password string) (*TokenPair, error) {
	data := url.Values{}
	data.Set("client_id", c.cfg.ClientID)
	data.Set("client_secret", c.cfg.ClientSecret)
	data.Set("username", username)
	data.Set("password", password)
	data.Set("grant_type", "password")

	return c.tokenGrant(ctx, data)
}

func (c *KeycloakClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	data := url.Values{}
	data.Set("client_id", c.cfg.ClientID)
	data.Set("client_secret", c.cfg.ClientSecret)
	data.Set("refresh_token", refreshToken)
	data.Set("grant_type", "refresh_token")

	return c.tokenGrant(ctx, data)
}

func (c *KeycloakClient) tokenGrant(ctx context.Context, data url.Values) (*TokenPair, error) {
	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.cfg.BaseURL, c.cfg.Realm)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrAuthFailed
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token grant failed: status=%d", resp.StatusCode)
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	return &pair, nil
}

func (c *KeycloakClient) postForm(ctx context.Context, rawURL string, data url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *KeycloakClient) getJSON(ctx context.Context, rawURL, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}

func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 1<<20))
}
