package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/seralin/inkwell/internal/domain"
)

// GetCategories returns all browsable categories.
func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []categoryDTO
	if err := decodeObject(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	return mapCategories(dtos), nil
}

// GetNovels returns one page of the catalog listing. A non-empty Keyword
// switches to the search endpoint; the filter parameters apply either way.
func (c *Client) GetNovels(ctx context.Context, q domain.NovelQuery) ([]domain.Novel, int, error) {
	query := pageQuery(q.Page, q.PageSize)
	if q.CategoryID != "" {
		query.Set("categoryId", q.CategoryID)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.SortBy != "" {
		query.Set("sortBy", q.SortBy)
	}

	path := "/api/novels"
	if q.Keyword != "" {
		path = "/api/novels/search"
		query.Set("keyword", q.Keyword)
	}

	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, 0, err
	}

	page, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse novel listing: %w", err)
	}

	var dtos []novelDTO
	if page.Content != nil {
		if err := json.Unmarshal(page.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse novel listing: %w", err)
		}
	}
	return mapNovels(dtos), page.TotalElements, nil
}

// GetNovel returns a single novel's detail.
func (c *Client) GetNovel(ctx context.Context, novelID string) (*domain.Novel, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/novels/"+novelID, nil, nil)
	if err != nil {
		return nil, err
	}

	var dto novelDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse novel: %w", err)
	}
	novel := mapNovel(dto)
	return &novel, nil
}

// GetChapters returns one page of a novel's table of contents.
func (c *Client) GetChapters(ctx context.Context, novelID string, page, pageSize int) ([]domain.ChapterRef, int, error) {
	query := pageQuery(page, pageSize)
	body, err := c.doRequest(ctx, http.MethodGet, "/api/novels/"+novelID+"/chapters", query, nil)
	if err != nil {
		return nil, 0, err
	}

	container, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse chapter list: %w", err)
	}

	var dtos []chapterRefDTO
	if container.Content != nil {
		if err := json.Unmarshal(container.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse chapter list: %w", err)
		}
	}
	return mapChapterRefs(dtos), container.TotalElements, nil
}

// GetChapter returns a chapter with its full content and prev/next links.
func (c *Client) GetChapter(ctx context.Context, novelID, chapterID string) (*domain.Chapter, error) {
	path := fmt.Sprintf("/api/novels/%s/chapters/%s", novelID, chapterID)
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var dto chapterDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse chapter: %w", err)
	}
	if dto.NovelID == "" {
		dto.NovelID = novelID
	}
	return mapChapter(dto), nil
}
