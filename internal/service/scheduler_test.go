package service

import (
	"context"
	"testing"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
	"mrcog-admin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func questionResp(id string, topic domain.Topic) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:            id,
		Question:      "Question " + id,
		Options:       []string{"one", "two", "three", "four"},
		CorrectAnswer: "A",
		Explanation:   "Because.",
		Topic:         string(topic),
		IsActive:      true,
	}
}

func bucketResp(id, name string, topic domain.Topic, day domain.Weekday, active bool) dto.BucketResponse {
	return dto.BucketResponse{
		ID:           id,
		Name:         name,
		Topic:        string(topic),
		Questions:    []dto.QuestionResponse{},
		MaxQuestions: 5,
		DayOfWeek:    string(day),
		IsActive:     active,
	}
}

func activeQuestionParams() dto.ListParams {
	active := true
	params := dto.AllItems()
	params.IsActive = &active
	return params
}

func refreshedScheduler(t *testing.T, api *MockSchedulerAPI, buckets []dto.BucketResponse, questions []dto.QuestionResponse) SchedulerService {
	t.Helper()
	api.On("ListBuckets", mock.Anything, dto.AllItems()).
		Return(&dto.BucketListResponse{Buckets: buckets, Total: len(buckets)}, nil)
	api.On("ListQuestions", mock.Anything, activeQuestionParams()).
		Return(&dto.QuestionListResponse{Questions: questions, Total: len(questions)}, nil)

	svc := NewSchedulerService(api, validation.NewValidator())
	require.NoError(t, svc.Refresh(context.Background()))
	return svc
}

func TestScheduler_Refresh_LoadsFullState(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api,
		[]dto.BucketResponse{
			bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true),
			bucketResp("b2", "Tuesday Gynae", domain.TopicGynecology, domain.Tuesday, false),
		},
		[]dto.QuestionResponse{
			questionResp("q1", domain.TopicObstetrics),
			questionResp("q2", domain.TopicGynecology),
		})

	buckets := svc.Buckets()
	assert.Len(t, buckets, 2)

	week := svc.WeeklySchedule()
	require.Len(t, week, 7)
	assert.Equal(t, domain.Monday, week[0].Day)
	require.Len(t, week[0].Buckets, 1)
	assert.Equal(t, "b1", week[0].Buckets[0].ID)

	api.AssertExpectations(t)
}

func TestScheduler_Refresh_PropagatesFailure(t *testing.T) {
	api := new(MockSchedulerAPI)
	api.On("ListBuckets", mock.Anything, mock.Anything).
		Return(nil, domain.NewNetworkError(assert.AnError))
	api.On("ListQuestions", mock.Anything, mock.Anything).
		Return(&dto.QuestionListResponse{}, nil).Maybe()

	svc := NewSchedulerService(api, validation.NewValidator())
	err := svc.Refresh(context.Background())

	require.Error(t, err)
	assert.Empty(t, svc.Buckets())
}

func TestScheduler_SubmitDraft_CreatesBucket(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api, nil, []dto.QuestionResponse{questionResp("q1", domain.TopicObstetrics)})

	draft := svc.BeginDraft()
	draft.Name = "Monday Obstetrics"
	require.NoError(t, draft.SetTopic(domain.TopicObstetrics))
	q := domain.Question{ID: "q1", Topic: domain.TopicObstetrics, IsActive: true}
	require.NoError(t, draft.ToggleQuestion(&q))

	created := bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)
	authoritative := created
	authoritative.QuestionCount = 1
	authoritative.RemainingCapacity = 4
	authoritative.CompletionPercent = 20

	api.On("CreateBucket", mock.Anything, dto.CreateBucketRequest{
		Name:         "Monday Obstetrics",
		Topic:        "Obstetrics",
		Questions:    []string{"q1"},
		MaxQuestions: 5,
		DayOfWeek:    "Monday",
	}).Return(&created, nil)
	api.On("GetBucket", mock.Anything, "b1").Return(&authoritative, nil)

	bucket, err := svc.SubmitDraft(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, 1, bucket.QuestionCount)
	assert.Equal(t, 4, bucket.RemainingCapacity)

	// The reloaded state lands in the local set.
	buckets := svc.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[0].QuestionCount)
	api.AssertExpectations(t)
}

func TestScheduler_SubmitDraft_UpdatesExistingBucket(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api, nil, nil)

	existing := bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)
	existing.Questions = []dto.QuestionResponse{questionResp("q1", domain.TopicObstetrics)}
	api.On("GetBucket", mock.Anything, "b1").Return(&existing, nil)

	draft, err := svc.EditBucket(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", draft.OriginID)
	assert.True(t, draft.IsSelected("q1"))

	require.NoError(t, draft.SetDay(domain.Friday))

	api.On("UpdateBucket", mock.Anything, "b1", dto.UpdateBucketRequest{
		Name:         "Monday Obstetrics",
		Topic:        "Obstetrics",
		Questions:    []string{"q1"},
		MaxQuestions: 5,
		DayOfWeek:    "Friday",
	}).Return(&existing, nil)

	_, err = svc.SubmitDraft(context.Background(), draft)
	require.NoError(t, err)
	api.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
}

func TestScheduler_SubmitDraft_RejectsIncompleteDraft(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := NewSchedulerService(api, validation.NewValidator())

	draft := svc.BeginDraft()
	draft.Name = "No questions yet"
	require.NoError(t, draft.SetTopic(domain.TopicSurgery))

	_, err := svc.SubmitDraft(context.Background(), draft)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrInvalidInput, domainErr.Code)
	api.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
}

func TestScheduler_SubmitDraft_RefusesDuplicateSubmission(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := NewSchedulerService(api, validation.NewValidator())

	draft := svc.BeginDraft()
	draft.Name = "Monday Obstetrics"
	require.NoError(t, draft.SetTopic(domain.TopicObstetrics))
	q := domain.Question{ID: "q1", Topic: domain.TopicObstetrics, IsActive: true}
	require.NoError(t, draft.ToggleQuestion(&q))

	// Simulate an outstanding request for the same draft.
	impl := svc.(*schedulerService)
	impl.inflight["submit:"+draft.ID] = true

	_, err := svc.SubmitDraft(context.Background(), draft)

	require.Error(t, err)
	api.AssertNotCalled(t, "CreateBucket", mock.Anything, mock.Anything)
}

func TestScheduler_DeleteBucket_RequiresConfirmation(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api,
		[]dto.BucketResponse{bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)}, nil)

	err := svc.DeleteBucket(context.Background(), "b1", false)
	require.Error(t, err)
	api.AssertNotCalled(t, "DeleteBucket", mock.Anything, mock.Anything)

	api.On("DeleteBucket", mock.Anything, "b1").Return(nil)
	require.NoError(t, svc.DeleteBucket(context.Background(), "b1", true))
	assert.Empty(t, svc.Buckets())
}

func TestScheduler_ToggleBucket_FlipsActiveFlag(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api,
		[]dto.BucketResponse{bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)}, nil)

	toggled := bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, false)
	api.On("ToggleBucket", mock.Anything, "b1", false).Return(nil)
	api.On("GetBucket", mock.Anything, "b1").Return(&toggled, nil)

	bucket, err := svc.ToggleBucket(context.Background(), "b1")

	require.NoError(t, err)
	assert.False(t, bucket.IsActive)
	assert.False(t, svc.Buckets()[0].IsActive)
	api.AssertExpectations(t)
}

func TestScheduler_AddQuestion_RefusesFullBucket(t *testing.T) {
	full := bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)
	full.QuestionCount = 5

	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api, []dto.BucketResponse{full}, nil)

	_, err := svc.AddQuestion(context.Background(), "b1", "q9")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCapacityExceeded, domainErr.Code)
	api.AssertNotCalled(t, "AddBucketQuestion", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_AddQuestion_RefusesTopicMismatch(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api,
		[]dto.BucketResponse{bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)},
		[]dto.QuestionResponse{questionResp("q1", domain.TopicGynecology)})

	_, err := svc.AddQuestion(context.Background(), "b1", "q1")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrTopicMismatch, domainErr.Code)
	api.AssertNotCalled(t, "AddBucketQuestion", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_SendNow_RequiresTargetGroup(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := NewSchedulerService(api, validation.NewValidator())

	err := svc.SendNow(context.Background(), "b1", "  ")
	require.Error(t, err)
	api.AssertNotCalled(t, "SendBucket", mock.Anything, mock.Anything, mock.Anything)

	api.On("SendBucket", mock.Anything, "b1", dto.SendBucketRequest{TargetGroupID: "g1"}).Return(nil)
	require.NoError(t, svc.SendNow(context.Background(), "b1", "g1"))
	api.AssertExpectations(t)
}

func TestScheduler_BulkUpdate_RejectsUnknownDay(t *testing.T) {
	api := new(MockSchedulerAPI)
	svc := NewSchedulerService(api, validation.NewValidator())

	err := svc.BulkUpdate(context.Background(), []dto.ScheduleUpdate{
		{ID: "b1", DayOfWeek: "Someday", IsActive: true},
	})

	require.Error(t, err)
	api.AssertNotCalled(t, "BulkUpdateSchedules", mock.Anything, mock.Anything)
}

func TestScheduler_CandidateQuestions_FiltersByTopicAndSearch(t *testing.T) {
	inactive := questionResp("q3", domain.TopicObstetrics)
	inactive.IsActive = false

	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api, nil, []dto.QuestionResponse{
		questionResp("q1", domain.TopicObstetrics),
		questionResp("q2", domain.TopicGynecology),
		inactive,
	})

	draft := svc.BeginDraft()
	require.NoError(t, draft.SetTopic(domain.TopicObstetrics))

	candidates := svc.CandidateQuestions(draft, "")
	require.Len(t, candidates, 1)
	assert.Equal(t, "q1", candidates[0].ID)

	// Case-insensitive substring over the question text.
	assert.Len(t, svc.CandidateQuestions(draft, "QUESTION Q1"), 1)
	assert.Empty(t, svc.CandidateQuestions(draft, "no such text"))
}

func TestScheduler_TopicSummaries_CountsScheduledQuestions(t *testing.T) {
	b1 := bucketResp("b1", "Monday Obstetrics", domain.TopicObstetrics, domain.Monday, true)
	b1.QuestionCount = 3
	b2 := bucketResp("b2", "Friday Obstetrics", domain.TopicObstetrics, domain.Friday, false)
	b2.QuestionCount = 2

	api := new(MockSchedulerAPI)
	svc := refreshedScheduler(t, api,
		[]dto.BucketResponse{b1, b2},
		[]dto.QuestionResponse{questionResp("q1", domain.TopicObstetrics)})

	summaries := svc.TopicSummaries()
	require.Len(t, summaries, len(domain.Topics()))

	obstetrics := summaries[0]
	assert.Equal(t, domain.TopicObstetrics, obstetrics.Topic)
	assert.Equal(t, 2, obstetrics.BucketCount)
	assert.Equal(t, 1, obstetrics.ActiveBucketCount)
	assert.Equal(t, 5, obstetrics.ScheduledQuestions)
	assert.Equal(t, 1, obstetrics.BankQuestionCount)
}
