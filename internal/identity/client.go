package identity

import (
	"context"
	"errors"
)

var (
	// ErrAuthFailed is returned when the provider rejects the presented
	// credentials or refresh token.
	ErrAuthFailed = errors.New("authentication failed")
)

// TokenPair is the provider-issued token set from a successful
// authentication or refresh.
type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

// CreateUserParams describes the identity to provision. Username is the
// lowercased admin email and doubles as the provider email.
type CreateUserParams struct {
	Username  string
	FirstName string
	LastName  string
	Roles     []string
}

// Client is the surface the provisioning and auth services consume. The
// provider's token/credential mechanics stay behind it.
type Client interface {
	// CreateUser provisions an identity with the given client roles and
	// returns the provider-assigned identity id.
	CreateUser(ctx context.Context, params CreateUserParams) (string, error)
	// DeleteUser removes a provisioned identity. Used as the compensating
	// action when the local half of a provisioning transaction fails.
	DeleteUser(ctx context.Context, userID string) error
	// SendCredentialSetupEmail asks the provider to email the new identity
	// a set-password link.
	SendCredentialSetupEmail(ctx context.Context, userID string) error
	// SendPasswordResetEmail returns (false, nil) specifically when the
	// identity does not exist; transport failures return an error.
	SendPasswordResetEmail(ctx context.Context, email string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
