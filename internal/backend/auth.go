package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studiowebux/apiconsole/internal/types"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	refreshPath  = "/api/auth/refresh"
	mePath       = "/api/auth/me"
	profilePath  = "/api/auth/profile"
	passwordPath = "/api/auth/profile/password"
)

// Login exchanges credentials for tokens
func (c *Client) Login(ctx context.Context, creds types.Credentials) (types.AuthGrant, error) {
	return c.grant(ctx, loginPath, creds)
}

// Register creates an account and signs it in
func (c *Client) Register(ctx context.Context, reg types.Registration) (types.AuthGrant, error) {
	return c.grant(ctx, registerPath, reg)
}

func (c *Client) grant(ctx context.Context, path string, payload any) (types.AuthGrant, error) {
	body, err := c.do(ctx, "POST", path, nil, payload, "")
	if err != nil {
		return types.AuthGrant{}, err
	}
	var g types.AuthGrant
	if err := json.Unmarshal(body, &g); err != nil {
		return types.AuthGrant{}, fmt.Errorf("parsing response: %w", err)
	}
	if g.AccessToken == "" {
		return types.AuthGrant{}, fmt.Errorf("%s: response carried no access token", path)
	}
	return g, nil
}

// Refresh obtains a new access token with the refresh token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("no refresh token")
	}
	body, err := c.do(ctx, "POST", refreshPath, nil, nil, refreshToken)
	if err != nil {
		return "", err
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%s: response carried no access token", refreshPath)
	}
	return resp.AccessToken, nil
}

// Me returns the signed-in user
func (c *Client) Me(ctx context.Context) (types.UserProfile, error) {
	body, err := c.do(ctx, "GET", mePath, nil, nil, "")
	if err != nil {
		return types.UserProfile{}, err
	}
	var u types.UserProfile
	if err := decodeEnveloped(body, "user", &u); err != nil {
		return types.UserProfile{}, err
	}
	return u, nil
}

// UpdateProfile changes username and email; the returned profile is authoritative
func (c *Client) UpdateProfile(ctx context.Context, in types.ProfileUpdate) (types.UserProfile, error) {
	body, err := c.do(ctx, "PUT", profilePath, nil, in, "")
	if err != nil {
		return types.UserProfile{}, err
	}
	var u types.UserProfile
	if err := decodeEnveloped(body, "user", &u); err != nil {
		return types.UserProfile{}, err
	}
	return u, nil
}

// ChangePassword sets a new password after the backend checks the current one
func (c *Client) ChangePassword(ctx context.Context, in types.PasswordChange) error {
	_, err := c.do(ctx, "PUT", passwordPath, nil, in, "")
	return err
}
