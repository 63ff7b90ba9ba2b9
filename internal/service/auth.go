package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"graspnest.app/api-server/internal/identity"
	"graspnest.app/api-server/internal/store"
)

type AuthService interface {
	// Login authenticates against the identity provider after verifying
	// the local mirror row exists.
	Login(ctx context.Context, username, password string) (*identity.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*identity.TokenPair, error)
	// ForgetPassword returns false when no such identity exists, so the
	// handler can answer honestly without leaking transport errors.
	ForgetPassword(ctx context.Context, username string) (bool, error)
}

type authService struct {
	users    store.UserStore
	identity identity.Client
}

func NewAuthService(users store.UserStore, idc identity.Client) AuthService {
	return &authService{users: users, identity: idc}
}

func (s *authService) Login(ctx context.Context, username, password string) (*identity.TokenPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrUnauthorized)
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	pair, err := s.identity.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, identity.ErrAuthFailed) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("authenticating %q: %w", username, err)
	}

	slog.InfoContext(ctx, "user logged in", "username", username)
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*identity.TokenPair, error) {
	pair, err := s.identity.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, identity.ErrAuthFailed) {
			return nil, fmt.Errorf("invalid refresh token: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	return pair, nil
}

func (s *authService) ForgetPassword(ctx context.Context, username string) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	sent, err := s.identity.SendPasswordResetEmail(ctx, username)
	if err != nil {
		return false, fmt.Errorf("sending password reset: %w", err)
	}
	if !sent {
		slog.InfoContext(ctx, "password reset requested for unknown user", "username", username)
	}
	return sent, nil
}
