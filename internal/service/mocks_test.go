package service

import (
	"context"

	"mrcog-admin/internal/dto"

	"github.com/stretchr/testify/mock"
)

// MockSchedulerAPI is a mock type for the SchedulerAPI interface
type MockSchedulerAPI struct {
	mock.Mock
}

func (m *MockSchedulerAPI) ListBuckets(ctx context.Context, params dto.ListParams) (*dto.BucketListResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BucketListResponse), args.Error(1)
}

func (m *MockSchedulerAPI) GetBucket(ctx context.Context, id string) (*dto.BucketResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BucketResponse), args.Error(1)
}

func (m *MockSchedulerAPI) CreateBucket(ctx context.Context, req dto.CreateBucketRequest) (*dto.BucketResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BucketResponse), args.Error(1)
}

func (m *MockSchedulerAPI) UpdateBucket(ctx context.Context, id string, req dto.UpdateBucketRequest) (*dto.BucketResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BucketResponse), args.Error(1)
}

func (m *MockSchedulerAPI) DeleteBucket(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSchedulerAPI) ToggleBucket(ctx context.Context, id string, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockSchedulerAPI) AddBucketQuestion(ctx context.Context, bucketID, questionID string) (*dto.BucketResponse, error) {
	args := m.Called(ctx, bucketID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BucketResponse), args.Error(1)
}

func (m *MockSchedulerAPI) RemoveBucketQuestion(ctx context.Context, bucketID, questionID string) (*dto.BucketResponse, error) {
	args := m.Called(ctx, bucketID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BucketResponse), args.Error(1)
}

func (m *MockSchedulerAPI) SendBucket(ctx context.Context, id string, req dto.SendBucketRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func (m *MockSchedulerAPI) DaySchedule(ctx context.Context, day string, activeOnly bool) (*dto.DayScheduleResponse, error) {
	args := m.Called(ctx, day, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DayScheduleResponse), args.Error(1)
}

func (m *MockSchedulerAPI) BulkUpdateSchedules(ctx context.Context, req dto.BulkUpdateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockSchedulerAPI) ListQuestions(ctx context.Context, params dto.ListParams) (*dto.QuestionListResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionListResponse), args.Error(1)
}

// MockRegistryAPI is a mock type for the RegistryAPI interface
type MockRegistryAPI struct {
	mock.Mock
}

func (m *MockRegistryAPI) ListQuestions(ctx context.Context, params dto.ListParams) (*dto.QuestionListResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionListResponse), args.Error(1)
}

func (m *MockRegistryAPI) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *MockRegistryAPI) CreateQuestion(ctx context.Context, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *MockRegistryAPI) UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *MockRegistryAPI) DeleteQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistryAPI) ToggleQuestion(ctx context.Context, id string, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockRegistryAPI) DailyQuestions(ctx context.Context) (*dto.QuestionListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionListResponse), args.Error(1)
}

// MockDashboardAPI is a mock type for the DashboardAPI interface
type MockDashboardAPI struct {
	mock.Mock
}

func (m *MockDashboardAPI) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardStatsResponse), args.Error(1)
}

func (m *MockDashboardAPI) BotStatus(ctx context.Context) (*dto.BotStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BotStatusResponse), args.Error(1)
}

func (m *MockDashboardAPI) SendTestMessage(ctx context.Context) (*dto.TestMessageResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TestMessageResponse), args.Error(1)
}

func (m *MockDashboardAPI) UpdateBotSchedule(ctx context.Context, req dto.BotScheduleRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockDashboardAPI) ListGroups(ctx context.Context) (*dto.GroupListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupListResponse), args.Error(1)
}

func (m *MockDashboardAPI) DiscoverGroups(ctx context.Context) (*dto.GroupListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GroupListResponse), args.Error(1)
}

func (m *MockDashboardAPI) UpdateGroup(ctx context.Context, id string, req dto.UpdateGroupRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}
