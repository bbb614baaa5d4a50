package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/seralin/inkwell/internal/domain"
)

// GetLibrary returns one page of the signed-in user's library.
func (c *Client) GetLibrary(ctx context.Context, page, pageSize int) ([]domain.LibraryEntry, int, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/library", pageQuery(page, pageSize), nil)
	if err != nil {
		return nil, 0, err
	}

	container, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse library: %w", err)
	}

	var dtos []libraryEntryDTO
	if container.Content != nil {
		if err := json.Unmarshal(container.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse library: %w", err)
		}
	}
	return mapLibraryEntries(dtos), container.TotalElements, nil
}

// AddToLibrary saves a novel to the user's library.
func (c *Client) AddToLibrary(ctx context.Context, novelID string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/library/"+novelID, nil, nil)
	return err
}

// RemoveFromLibrary removes a novel from the user's library.
func (c *Client) RemoveFromLibrary(ctx context.Context, novelID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/api/library/"+novelID, nil, nil)
	return err
}

// GetHistory returns one page of the user's reading history, newest first.
func (c *Client) GetHistory(ctx context.Context, page, pageSize int) ([]domain.HistoryEntry, int, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/history", pageQuery(page, pageSize), nil)
	if err != nil {
		return nil, 0, err
	}

	container, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse history: %w", err)
	}

	var dtos []historyEntryDTO
	if container.Content != nil {
		if err := json.Unmarshal(container.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse history: %w", err)
		}
	}
	return mapHistoryEntries(dtos), container.TotalElements, nil
}

// RecordHistory reports a reading session. Best-effort: callers treat a
// failure here as non-fatal.
func (c *Client) RecordHistory(ctx context.Context, novelID, chapterID string) error {
	payload := map[string]string{
		"novelId":   novelID,
		"chapterId": chapterID,
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/api/history", nil, payload)
	return err
}
