package client

import (
	"context"
	"net/http"

	"mrcog-admin/internal/dto"
)

// DashboardStats fetches the aggregate counters for the dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var resp dto.DashboardStatsResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BotStatus fetches the messaging bot's health.
func (c *Client) BotStatus(ctx context.Context) (*dto.BotStatusResponse, error) {
	var resp dto.BotStatusResponse
	if err := c.do(ctx, http.MethodGet, "/bot/status", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendTestMessage asks the bot to post a test message.
func (c *Client) SendTestMessage(ctx context.Context) (*dto.TestMessageResponse, error) {
	var resp dto.TestMessageResponse
	if err := c.do(ctx, http.MethodPost, "/bot/test-message", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateBotSchedule replaces the bot's posting schedule expression.
func (c *Client) UpdateBotSchedule(ctx context.Context, req dto.BotScheduleRequest) error {
	return c.do(ctx, http.MethodPut, "/bot/schedule", nil, req, nil)
}

// ListGroups fetches the registered destination groups.
func (c *Client) ListGroups(ctx context.Context) (*dto.GroupListResponse, error) {
	var resp dto.GroupListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/telegram-groups", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DiscoverGroups asks the backend to re-scan the groups the bot can reach.
func (c *Client) DiscoverGroups(ctx context.Context) (*dto.GroupListResponse, error) {
	var resp dto.GroupListResponse
	if err := c.do(ctx, http.MethodPost, "/admin/telegram-groups/discover", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateGroup enables or disables a destination group.
func (c *Client) UpdateGroup(ctx context.Context, id string, req dto.UpdateGroupRequest) error {
	return c.do(ctx, http.MethodPut, "/admin/telegram-groups/"+id, nil, req, nil)
}
