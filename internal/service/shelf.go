package service

import (
	"context"
	"log/slog"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
)

// ShelfService handles the user's library and reading history.
type ShelfService struct {
	repo   domain.ShelfRepository
	logger *slog.Logger
}

// NewShelfService creates a new shelf service.
func NewShelfService(repo domain.ShelfRepository, logger *slog.Logger) *ShelfService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShelfService{repo: repo, logger: logger}
}

// FetchLibrary is the pager fetch function for the library tab.
func (s *ShelfService) FetchLibrary(ctx context.Context, req pager.Request) ([]domain.LibraryEntry, int, error) {
	return s.repo.GetLibrary(ctx, req.Page, req.PageSize)
}

// FetchHistory is the pager fetch function for the history tab.
func (s *ShelfService) FetchHistory(ctx context.Context, req pager.Request) ([]domain.HistoryEntry, int, error) {
	return s.repo.GetHistory(ctx, req.Page, req.PageSize)
}

// Add saves a novel to the library.
func (s *ShelfService) Add(ctx context.Context, novelID string) error {
	if err := s.repo.AddToLibrary(ctx, novelID); err != nil {
		s.logger.Error("failed to add to library", "novel", novelID, "error", err)
		return err
	}
	s.logger.Info("added to library", "novel", novelID)
	return nil
}

// Remove deletes a novel from the library.
func (s *ShelfService) Remove(ctx context.Context, novelID string) error {
	if err := s.repo.RemoveFromLibrary(ctx, novelID); err != nil {
		s.logger.Error("failed to remove from library", "novel", novelID, "error", err)
		return err
	}
	s.logger.Info("removed from library", "novel", novelID)
	return nil
}
