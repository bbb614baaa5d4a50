// Package service orchestrates the API client, the durable state store, and
// the pager controllers on behalf of the TUI.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/seralin/inkwell/internal/domain"
	"github.com/seralin/inkwell/internal/pager"
)

// CatalogService handles novel browsing, search, and chapter content.
type CatalogService struct {
	repo   domain.CatalogRepository
	logger *slog.Logger

	mu         sync.Mutex
	categories []domain.Category
	catSet     *domain.CategorySet
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo domain.CatalogRepository, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: repo, logger: logger}
}

// Categories returns the category list, fetching it once per session.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	cached := s.categories
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	cats, err := s.repo.GetCategories(ctx)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.categories = cats
	s.catSet = domain.NewCategorySet(cats)
	s.mu.Unlock()

	s.logger.Info("loaded categories", "count", len(cats))
	return cats, nil
}

// ResolveCategory maps a slug to a category id. ok=false for a slug the
// server does not know, which the pager turns into an empty list with no
// request issued. Before categories have loaded every non-empty slug is
// unknown.
func (s *CatalogService) ResolveCategory(slug string) (string, bool) {
	s.mu.Lock()
	set := s.catSet
	s.mu.Unlock()

	cat, ok := set.Resolve(slug)
	if !ok {
		return "", false
	}
	return cat.ID, true
}

// FetchNovels is the pager fetch function for the browse view.
func (s *CatalogService) FetchNovels(ctx context.Context, req pager.Request) ([]domain.Novel, int, error) {
	fs := req.Filters
	return s.repo.GetNovels(ctx, domain.NovelQuery{
		CategoryID: fs.Category,
		Status:     fs.Status,
		SortBy:     fs.SortBy,
		Keyword:    fs.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
}

// Novel returns one novel's detail.
func (s *CatalogService) Novel(ctx context.Context, novelID string) (*domain.Novel, error) {
	return s.repo.GetNovel(ctx, novelID)
}

// Chapters returns one page of a novel's table of contents.
func (s *CatalogService) Chapters(ctx context.Context, novelID string, page, pageSize int) ([]domain.ChapterRef, int, error) {
	return s.repo.GetChapters(ctx, novelID, page, pageSize)
}
