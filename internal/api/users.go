package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/seralin/inkwell/internal/domain"
)

// SignIn exchanges credentials for a bearer token and stores it on the client.
func (c *Client) SignIn(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", nil, payload)
	if err != nil {
		return nil, err
	}

	var dto authResponseDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse auth response: %w", err)
	}

	c.token = dto.Token
	return &domain.AuthResult{
		Token:    dto.Token,
		UserID:   dto.UserID,
		Username: dto.Username,
	}, nil
}

// GetProfile returns a user's profile. An empty userID means the signed-in user.
func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	path := "/api/users/me"
	if userID != "" {
		path = "/api/users/" + userID
	}
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var dto profileDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return mapProfile(dto), nil
}

// UpdateProfile applies a partial update to the signed-in user's profile and
// returns the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	payload := map[string]any{}
	if patch.Username != nil {
		payload["username"] = *patch.Username
	}
	if patch.Bio != nil {
		payload["bio"] = *patch.Bio
	}
	if patch.AvatarURL != nil {
		payload["avatarUrl"] = *patch.AvatarURL
	}

	body, err := c.doRequest(ctx, http.MethodPatch, "/api/users/me", nil, payload)
	if err != nil {
		return nil, err
	}

	var dto profileDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return mapProfile(dto), nil
}
