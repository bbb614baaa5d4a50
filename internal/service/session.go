package service

import (
	"context"
	"log/slog"

	"github.com/seralin/inkwell/internal/api"
	"github.com/seralin/inkwell/internal/config"
	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/state"
)

// SessionService manages sign-in state and the current user identity.
type SessionService struct {
	client *api.Client
	users  domain.UserRepository
	cfg    *config.Config
	store  *state.Store
	logger *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(client *api.Client, cfg *config.Config, store *state.Store, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{client: client, users: client, cfg: cfg, store: store, logger: logger}
}

// UserID returns the signed-in user's id, or the guest sentinel. Used to
// scope per-user state (liked ids) in the local store.
func (s *SessionService) UserID() string {
	if s.cfg.Server.UserID != "" {
		return s.cfg.Server.UserID
	}
	return state.GuestUser
}

// Username returns the signed-in user's display name, or "".
func (s *SessionService) Username() string {
	return s.cfg.Server.Username
}

// SignedIn reports whether a token is present.
func (s *SessionService) SignedIn() bool {
	return s.cfg.SignedIn()
}

// SignIn authenticates and persists the credentials.
func (s *SessionService) SignIn(ctx context.Context, username, password string) error {
	result, err := s.users.SignIn(ctx, username, password)
	if err != nil {
		s.logger.Error("sign-in failed", "username", username, "error", err)
		return err
	}

	s.cfg.Server.Token = result.Token
	s.cfg.Server.UserID = result.UserID
	s.cfg.Server.Username = result.Username
	s.client.SetToken(result.Token)

	if err := config.Save(s.cfg); err != nil {
		s.logger.Warn("failed to persist credentials", "error", err)
	}
	s.logger.Info("signed in", "user", result.Username)
	return nil
}

// SignOut clears the credentials and this account's local liked sets.
// Reading progress stays: it belongs to the device, like a browser's local
// storage surviving a logout.
func (s *SessionService) SignOut() error {
	userID := s.cfg.Server.UserID
	if userID != "" {
		s.store.ClearUser(userID)
	}

	s.cfg.Server.Token = ""
	s.cfg.Server.UserID = ""
	s.cfg.Server.Username = ""
	s.client.SetToken("")

	if err := config.ClearCredentials(); err != nil {
		return err
	}
	s.logger.Info("signed out")
	return nil
}

// Profile returns a user's profile; empty id means the signed-in user.
func (s *SessionService) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.users.GetProfile(ctx, userID)
}

// UpdateProfile applies a partial profile edit.
func (s *SessionService) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	profile, err := s.users.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil {
		s.cfg.Server.Username = *patch.Username
		if err := config.Save(s.cfg); err != nil {
			s.logger.Warn("failed to persist username change", "error", err)
		}
	}
	return profile, nil
}
