package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/seralin/inkwell/internal/domain"
)

// GetRankings returns one page of a leaderboard.
func (c *Client) GetRankings(ctx context.Context, kind domain.RankKind, q domain.RankQuery) ([]domain.RankEntry, int, error) {
	query := pageQuery(q.Page, q.PageSize)
	if q.TimeRange != "" {
		query.Set("timeRange", q.TimeRange)
	}
	if q.CategoryID != "" {
		query.Set("categoryId", q.CategoryID)
	}
	if q.SortBy != "" {
		query.Set("sortBy", q.SortBy)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/api/rankings/"+string(kind), query, nil)
	if err != nil {
		return nil, 0, err
	}

	page, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse rankings: %w", err)
	}

	var dtos []rankEntryDTO
	if page.Content != nil {
		if err := json.Unmarshal(page.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse rankings: %w", err)
		}
	}
	return mapRankEntries(kind, dtos), page.TotalElements, nil
}
