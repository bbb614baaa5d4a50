package service

import (
	"context"
	"log/slog"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
)

// RankingService handles the leaderboard listings.
type RankingService struct {
	repo   domain.RankingRepository
	logger *slog.Logger
}

// NewRankingService creates a new ranking service.
func NewRankingService(repo domain.RankingRepository, logger *slog.Logger) *RankingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingService{repo: repo, logger: logger}
}

// boardKind maps a pager kind to the leaderboard it queries.
func boardKind(k pager.Kind) domain.RankKind {
	switch k {
	case pager.KindRankReaders:
		return domain.RankReaders
	case pager.KindRankWriters:
		return domain.RankWriters
	default:
		return domain.RankNovels
	}
}

// FetchRankings is the pager fetch function for the rankings view. The
// board is chosen by the request's filter kind.
func (s *RankingService) FetchRankings(ctx context.Context, req pager.Request) ([]domain.RankEntry, int, error) {
	fs := req.Filters
	return s.repo.GetRankings(ctx, boardKind(fs.Kind), domain.RankQuery{
		TimeRange:  fs.Range,
		CategoryID: fs.Category,
		SortBy:     fs.SortBy,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
}
