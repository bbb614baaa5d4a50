package service

import (
	"context"
	"log/slog"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
	"github.com/seralin/inkwell/internal/state"
)

// likedResourceReviews is the state-store namespace for liked review ids.
const likedResourceReviews = "reviews"

// SocialService handles reviews, comments, and review likes. Likes are
// mirrored into the local liked-id set so the UI can render the heart state
// without refetching.
type SocialService struct {
	repo    domain.SocialRepository
	store   *state.Store
	session *SessionService
	logger  *slog.Logger
}

// NewSocialService creates a new social service.
func NewSocialService(repo domain.SocialRepository, store *state.Store, session *SessionService, logger *slog.Logger) *SocialService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SocialService{repo: repo, store: store, session: session, logger: logger}
}

// FetchReviews returns a pager fetch function bound to one novel.
func (s *SocialService) FetchReviews(novelID string) func(context.Context, pager.Request) ([]domain.Review, int, error) {
	return func(ctx context.Context, req pager.Request) ([]domain.Review, int, error) {
		reviews, total, err := s.repo.GetReviews(ctx, novelID, req.Page, req.PageSize)
		if err != nil {
			return nil, 0, err
		}
		// Overlay the locally tracked liked state.
		liked := s.store.LikedIDs(likedResourceReviews, s.session.UserID())
		for i := range reviews {
			if liked[reviews[i].ID] {
				reviews[i].LikedByMe = true
			}
		}
		return reviews, total, nil
	}
}

// FetchComments returns a pager fetch function bound to one chapter.
func (s *SocialService) FetchComments(chapterID string) func(context.Context, pager.Request) ([]domain.Comment, int, error) {
	return func(ctx context.Context, req pager.Request) ([]domain.Comment, int, error) {
		return s.repo.GetComments(ctx, chapterID, req.Page, req.PageSize)
	}
}

// ToggleReviewLike flips the like state of a review. The local liked set is
// updated first so the UI reflects the change immediately, and rolled back if
// the server rejects it.
func (s *SocialService) ToggleReviewLike(ctx context.Context, reviewID string, currentlyLiked bool) (bool, error) {
	userID := s.session.UserID()
	liked := !currentlyLiked

	s.store.SetLiked(likedResourceReviews, userID, reviewID, liked)
	if err := s.repo.SetReviewLiked(ctx, reviewID, liked); err != nil {
		s.store.SetLiked(likedResourceReviews, userID, reviewID, currentlyLiked)
		s.logger.Error("failed to toggle review like", "review", reviewID, "error", err)
		return currentlyLiked, err
	}
	return liked, nil
}

// CreateReview posts a review.
func (s *SocialService) CreateReview(ctx context.Context, novelID string, rating int, body string) (*domain.Review, error) {
	return s.repo.CreateReview(ctx, novelID, rating, body)
}

// DeleteReview removes the user's own review.
func (s *SocialService) DeleteReview(ctx context.Context, reviewID string) error {
	return s.repo.DeleteReview(ctx, reviewID)
}

// CurrentUserID exposes the session identity so views can tell the user's own
// reviews apart.
func (s *SocialService) CurrentUserID() string {
	return s.session.UserID()
}

// CreateComment posts a chapter comment.
func (s *SocialService) CreateComment(ctx context.Context, chapterID, body string) (*domain.Comment, error) {
	return s.repo.CreateComment(ctx, chapterID, body)
}
