package client

import (
	"context"
	"net/http"

	"mrcog-admin/internal/dto"
)

// ListQuestions fetches a page of questions, filtered by topic and free-text
// search on the server side.
func (c *Client) ListQuestions(ctx context.Context, params dto.ListParams) (*dto.QuestionListResponse, error) {
	var resp dto.QuestionListResponse
	if err := c.do(ctx, http.MethodGet, "/questions", params.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetQuestion fetches a single question by id.
func (c *Client) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := c.do(ctx, http.MethodGet, "/questions/"+id, nil, nil, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// CreateQuestion adds a question to the bank.
func (c *Client) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := c.do(ctx, http.MethodPost, "/questions", nil, req, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// UpdateQuestion edits a question in place.
func (c *Client) UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	var resp dto.QuestionResponse
	if err := c.do(ctx, http.MethodPut, "/questions/"+id, nil, req, &resp); err != nil {
		return nil, err
	}
	resp.Normalize()
	return &resp, nil
}

// DeleteQuestion removes a question from the bank.
func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/questions/"+id, nil, nil, nil)
}

// ToggleQuestion flips a question's active flag.
func (c *Client) ToggleQuestion(ctx context.Context, id string, isActive bool) error {
	return c.do(ctx, http.MethodPatch, "/questions/"+id+"/toggle", nil, dto.ToggleRequest{IsActive: isActive}, nil)
}

// DailyQuestions previews the questions slated for today's post.
func (c *Client) DailyQuestions(ctx context.Context) (*dto.QuestionListResponse, error) {
	var resp dto.QuestionListResponse
	if err := c.do(ctx, http.MethodGet, "/questions/daily", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
