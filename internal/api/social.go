package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/seralin/inkwell/internal/domain"
)

// GetReviews returns one page of a novel's reviews.
func (c *Client) GetReviews(ctx context.Context, novelID string, page, pageSize int) ([]domain.Review, int, error) {
	path := "/api/novels/" + novelID + "/reviews"
	body, err := c.doRequest(ctx, http.MethodGet, path, pageQuery(page, pageSize), nil)
	if err != nil {
		return nil, 0, err
	}

	container, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse reviews: %w", err)
	}

	var dtos []reviewDTO
	if container.Content != nil {
		if err := json.Unmarshal(container.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse reviews: %w", err)
		}
	}
	return mapReviews(dtos), container.TotalElements, nil
}

// CreateReview posts a review for a novel.
func (c *Client) CreateReview(ctx context.Context, novelID string, rating int, reviewBody string) (*domain.Review, error) {
	payload := map[string]any{
		"rating":  rating,
		"content": reviewBody,
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/novels/"+novelID+"/reviews", nil, payload)
	if err != nil {
		return nil, err
	}

	var dto reviewDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse review: %w", err)
	}
	review := mapReview(dto)
	return &review, nil
}

// DeleteReview removes the user's own review.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/api/reviews/"+reviewID, nil, nil)
	return err
}

// SetReviewLiked likes or unlikes a review.
func (c *Client) SetReviewLiked(ctx context.Context, reviewID string, liked bool) error {
	method := http.MethodPost
	if !liked {
		method = http.MethodDelete
	}
	_, err := c.doRequest(ctx, method, "/api/reviews/"+reviewID+"/like", nil, nil)
	return err
}

// GetComments returns one page of a chapter's comments.
func (c *Client) GetComments(ctx context.Context, chapterID string, page, pageSize int) ([]domain.Comment, int, error) {
	path := "/api/chapters/" + chapterID + "/comments"
	body, err := c.doRequest(ctx, http.MethodGet, path, pageQuery(page, pageSize), nil)
	if err != nil {
		return nil, 0, err
	}

	container, err := decodePage(body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse comments: %w", err)
	}

	var dtos []commentDTO
	if container.Content != nil {
		if err := json.Unmarshal(container.Content, &dtos); err != nil {
			return nil, 0, fmt.Errorf("failed to parse comments: %w", err)
		}
	}
	return mapComments(dtos), container.TotalElements, nil
}

// CreateComment posts a comment on a chapter.
func (c *Client) CreateComment(ctx context.Context, chapterID, commentBody string) (*domain.Comment, error) {
	payload := map[string]string{"content": commentBody}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/chapters/"+chapterID+"/comments", nil, payload)
	if err != nil {
		return nil, err
	}

	var dto commentDTO
	if err := decodeObject(body, &dto); err != nil {
		return nil, fmt.Errorf("failed to parse comment: %w", err)
	}
	comment := mapComment(dto)
	return &comment, nil
}
