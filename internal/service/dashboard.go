package service

import (
	"context"
	"strings"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
	"mrcog-admin/internal/logger"

	"go.uber.org/zap"
)

// DashboardAPI is the slice of the REST client the dashboard and bot
// operations need.
type DashboardAPI interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	BotStatus(ctx context.Context) (*dto.BotStatusResponse, error)
	SendTestMessage(ctx context.Context) (*dto.TestMessageResponse, error)
	UpdateBotSchedule(ctx context.Context, req dto.BotScheduleRequest) error
	ListGroups(ctx context.Context) (*dto.GroupListResponse, error)
	DiscoverGroups(ctx context.Context) (*dto.GroupListResponse, error)
	UpdateGroup(ctx context.Context, id string, req dto.UpdateGroupRequest) error
}

// DashboardService surfaces the aggregate counters plus the bot's
// operational controls.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	BotStatus(ctx context.Context) (*dto.BotStatusResponse, error)
	SendTestMessage(ctx context.Context) (*dto.TestMessageResponse, error)
	UpdateBotSchedule(ctx context.Context, cronExpr string) error
	Groups(ctx context.Context) ([]dto.TelegramGroupResponse, error)
	DiscoverGroups(ctx context.Context) ([]dto.TelegramGroupResponse, error)
	SetGroupEnabled(ctx context.Context, id string, enabled bool) error
}

type dashboardService struct {
	api DashboardAPI
}

// NewDashboardService creates a DashboardService over the given API.
func NewDashboardService(api DashboardAPI) DashboardService {
	return &dashboardService{api: api}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	return s.api.DashboardStats(ctx)
}

func (s *dashboardService) BotStatus(ctx context.Context) (*dto.BotStatusResponse, error) {
	return s.api.BotStatus(ctx)
}

func (s *dashboardService) SendTestMessage(ctx context.Context) (*dto.TestMessageResponse, error) {
	resp, err := s.api.SendTestMessage(ctx)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("test message dispatched")
	return resp, nil
}

// UpdateBotSchedule replaces the bot's posting schedule expression.
func (s *dashboardService) UpdateBotSchedule(ctx context.Context, cronExpr string) error {
	if strings.TrimSpace(cronExpr) == "" {
		return domain.NewInvalidInputError("a schedule expression is required")
	}
	if err := s.api.UpdateBotSchedule(ctx, dto.BotScheduleRequest{Schedule: cronExpr}); err != nil {
		return err
	}
	logger.Get().Info("bot schedule updated", zap.String("schedule", cronExpr))
	return nil
}

func (s *dashboardService) Groups(ctx context.Context) ([]dto.TelegramGroupResponse, error) {
	resp, err := s.api.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (s *dashboardService) DiscoverGroups(ctx context.Context) ([]dto.TelegramGroupResponse, error) {
	resp, err := s.api.DiscoverGroups(ctx)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("group discovery completed", zap.Int("groups", len(resp.Groups)))
	return resp.Groups, nil
}

func (s *dashboardService) SetGroupEnabled(ctx context.Context, id string, enabled bool) error {
	return s.api.UpdateGroup(ctx, id, dto.UpdateGroupRequest{IsEnabled: enabled})
}
