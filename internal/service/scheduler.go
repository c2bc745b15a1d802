package service

import (
	"context"
	"strings"
	"sync"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
	"mrcog-admin/internal/logger"
	"mrcog-admin/internal/util"
	"mrcog-admin/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SchedulerAPI is the slice of the REST client the scheduler needs.
type SchedulerAPI interface {
	ListBuckets(ctx context.Context, params dto.ListParams) (*dto.BucketListResponse, error)
	GetBucket(ctx context.Context, id string) (*dto.BucketResponse, error)
	CreateBucket(ctx context.Context, req dto.CreateBucketRequest) (*dto.BucketResponse, error)
	UpdateBucket(ctx context.Context, id string, req dto.UpdateBucketRequest) (*dto.BucketResponse, error)
	DeleteBucket(ctx context.Context, id string) error
	ToggleBucket(ctx context.Context, id string, isActive bool) error
	AddBucketQuestion(ctx context.Context, bucketID, questionID string) (*dto.BucketResponse, error)
	RemoveBucketQuestion(ctx context.Context, bucketID, questionID string) (*dto.BucketResponse, error)
	SendBucket(ctx context.Context, id string, req dto.SendBucketRequest) error
	DaySchedule(ctx context.Context, day string, activeOnly bool) (*dto.DayScheduleResponse, error)
	BulkUpdateSchedules(ctx context.Context, req dto.BulkUpdateRequest) error
	ListQuestions(ctx context.Context, params dto.ListParams) (*dto.QuestionListResponse, error)
}

// SchedulerService manages question buckets: draft editing, persistence
// through the backend, and the grouping views over the full bucket set.
type SchedulerService interface {
	Refresh(ctx context.Context) error
	Buckets() []domain.Bucket
	WeeklySchedule() []domain.DaySchedule
	TopicSummaries() []domain.TopicSummary
	DaySchedule(ctx context.Context, day domain.Weekday, activeOnly bool) ([]domain.Bucket, error)

	BeginDraft() *domain.BucketDraft
	EditBucket(ctx context.Context, id string) (*domain.BucketDraft, error)
	CandidateQuestions(draft *domain.BucketDraft, search string) []domain.Question
	SubmitDraft(ctx context.Context, draft *domain.BucketDraft) (*domain.Bucket, error)

	DeleteBucket(ctx context.Context, id string, confirmed bool) error
	ToggleBucket(ctx context.Context, id string) (*domain.Bucket, error)
	AddQuestion(ctx context.Context, bucketID, questionID string) (*domain.Bucket, error)
	RemoveQuestion(ctx context.Context, bucketID, questionID string) (*domain.Bucket, error)
	SendNow(ctx context.Context, bucketID, targetGroupID string) error
	BulkUpdate(ctx context.Context, updates []dto.ScheduleUpdate) error
}

type schedulerService struct {
	api       SchedulerAPI
	validator *validation.Validator

	mu        sync.Mutex
	buckets   []domain.Bucket
	questions []domain.Question

	inflightMu sync.Mutex
	inflight   map[string]bool
}

// NewSchedulerService creates a SchedulerService over the given API.
func NewSchedulerService(api SchedulerAPI, validator *validation.Validator) SchedulerService {
	return &schedulerService{
		api:       api,
		validator: validator,
		inflight:  map[string]bool{},
	}
}

// Refresh loads the complete bucket set and the active question bank in
// parallel. The grouping views need the whole collection client-side, not a
// paged subset.
func (s *schedulerService) Refresh(ctx context.Context) error {
	var (
		buckets   []domain.Bucket
		questions []domain.Question
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.api.ListBuckets(gctx, dto.AllItems())
		if err != nil {
			return err
		}
		buckets = resp.ToDomain()
		return nil
	})
	g.Go(func() error {
		active := true
		params := dto.AllItems()
		params.IsActive = &active
		resp, err := s.api.ListQuestions(gctx, params)
		if err != nil {
			return err
		}
		questions = resp.ToDomain()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.buckets = buckets
	s.questions = questions
	s.mu.Unlock()

	logger.Get().Debug("scheduler state refreshed",
		zap.Int("buckets", len(buckets)),
		zap.Int("questions", len(questions)))
	return nil
}

// Buckets returns a copy of the loaded bucket set.
func (s *schedulerService) Buckets() []domain.Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Bucket, len(s.buckets))
	copy(out, s.buckets)
	return out
}

// WeeklySchedule recomputes the by-day partition over the loaded set.
func (s *schedulerService) WeeklySchedule() []domain.DaySchedule {
	return domain.GroupByDay(s.Buckets())
}

// TopicSummaries recomputes the by-topic aggregation over the loaded set.
func (s *schedulerService) TopicSummaries() []domain.TopicSummary {
	s.mu.Lock()
	buckets := make([]domain.Bucket, len(s.buckets))
	copy(buckets, s.buckets)
	questions := make([]domain.Question, len(s.questions))
	copy(questions, s.questions)
	s.mu.Unlock()
	return domain.SummarizeTopics(buckets, questions)
}

// DaySchedule fetches one day's buckets from the backend.
func (s *schedulerService) DaySchedule(ctx context.Context, day domain.Weekday, activeOnly bool) ([]domain.Bucket, error) {
	resp, err := s.api.DaySchedule(ctx, string(day), activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Bucket, 0, len(resp.Buckets))
	for i := range resp.Buckets {
		out = append(out, resp.Buckets[i].ToDomain())
	}
	return out, nil
}

// BeginDraft opens an empty draft.
func (s *schedulerService) BeginDraft() *domain.BucketDraft {
	return domain.NewBucketDraft(util.NewULID())
}

// EditBucket seeds a draft from a bucket's current server state.
func (s *schedulerService) EditBucket(ctx context.Context, id string) (*domain.BucketDraft, error) {
	resp, err := s.api.GetBucket(ctx, id)
	if err != nil {
		return nil, err
	}
	bucket := resp.ToDomain()
	return domain.DraftFromBucket(util.NewULID(), &bucket), nil
}

// CandidateQuestions lists the questions selectable into the draft: active,
// topic-matching, and (when search is non-empty) matching a case-insensitive
// substring of the question text.
func (s *schedulerService) CandidateQuestions(draft *domain.BucketDraft, search string) []domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Question
	needle := strings.ToLower(search)
	for _, q := range s.questions {
		if !draft.Selectable(&q) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(q.Text), needle) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// SubmitDraft persists a draft: create for a fresh draft, full-replacement
// update when editing an existing bucket. The server recomputes derived
// fields, so the authoritative state is reloaded afterwards and the local
// copy replaced. Duplicate submission of the same draft while a request is
// outstanding is refused.
func (s *schedulerService) SubmitDraft(ctx context.Context, draft *domain.BucketDraft) (*domain.Bucket, error) {
	if !draft.CanSubmit() {
		return nil, domain.NewInvalidInputError("bucket needs a name, a topic and at least one question")
	}
	if errs := s.validator.ValidateBucketRequest(
		draft.Name, string(draft.Topic), string(draft.DayOfWeek), draft.Selected(), draft.MaxQuestions,
	); len(errs) > 0 {
		return nil, errs
	}

	key := "submit:" + draft.ID
	if !s.begin(key) {
		return nil, domain.NewInvalidInputError("this bucket is already being saved")
	}
	defer s.end(key)

	var (
		saved *dto.BucketResponse
		err   error
	)
	if draft.OriginID == "" {
		saved, err = s.api.CreateBucket(ctx, dto.CreateBucketRequest{
			Name:         draft.Name,
			Topic:        string(draft.Topic),
			Questions:    draft.Selected(),
			MaxQuestions: draft.MaxQuestions,
			DayOfWeek:    string(draft.DayOfWeek),
		})
	} else {
		saved, err = s.api.UpdateBucket(ctx, draft.OriginID, dto.UpdateBucketRequest{
			Name:         draft.Name,
			Topic:        string(draft.Topic),
			Questions:    draft.Selected(),
			MaxQuestions: draft.MaxQuestions,
			DayOfWeek:    string(draft.DayOfWeek),
		})
	}
	if err != nil {
		return nil, err
	}

	// Reload the authoritative state rather than trusting the optimistic
	// response for the derived fields.
	authoritative, err := s.api.GetBucket(ctx, saved.ID)
	if err != nil {
		logger.Get().Warn("saved bucket could not be reloaded", zap.String("bucketID", saved.ID), zap.Error(err))
		authoritative = saved
	}

	bucket := authoritative.ToDomain()
	s.replaceLocal(bucket)
	logger.Get().Info("bucket saved",
		zap.String("bucketID", bucket.ID),
		zap.String("name", bucket.Name),
		zap.String("topic", string(bucket.Topic)),
		zap.String("day", string(bucket.DayOfWeek)))
	return &bucket, nil
}

// DeleteBucket permanently removes a bucket. Deletion is terminal and must
// be explicitly confirmed before the destructive call is issued.
func (s *schedulerService) DeleteBucket(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.NewInvalidInputError("bucket deletion requires explicit confirmation")
	}
	if err := s.api.DeleteBucket(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.buckets {
		if s.buckets[i].ID == id {
			s.buckets = append(s.buckets[:i], s.buckets[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	logger.Get().Info("bucket deleted", zap.String("bucketID", id))
	return nil
}

// ToggleBucket flips a bucket between Active and Inactive and reloads it.
func (s *schedulerService) ToggleBucket(ctx context.Context, id string) (*domain.Bucket, error) {
	current, ok := s.localBucket(id)
	if !ok {
		resp, err := s.api.GetBucket(ctx, id)
		if err != nil {
			return nil, err
		}
		b := resp.ToDomain()
		current = &b
	}
	if err := s.api.ToggleBucket(ctx, id, !current.IsActive); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

// AddQuestion adds one question to an existing bucket, enforcing the
// capacity and topic invariants client-side before the call.
func (s *schedulerService) AddQuestion(ctx context.Context, bucketID, questionID string) (*domain.Bucket, error) {
	if bucket, ok := s.localBucket(bucketID); ok {
		if bucket.LocalQuestionCount() >= bucket.MaxQuestions {
			return nil, domain.NewCapacityExceededError(bucket.MaxQuestions)
		}
		if q, ok := s.localQuestion(questionID); ok && q.Topic != bucket.Topic {
			return nil, domain.NewTopicMismatchError(bucket.Topic, q.Topic)
		}
	}
	resp, err := s.api.AddBucketQuestion(ctx, bucketID, questionID)
	if err != nil {
		return nil, err
	}
	bucket := resp.ToDomain()
	s.replaceLocal(bucket)
	return &bucket, nil
}

// RemoveQuestion removes one question from an existing bucket.
func (s *schedulerService) RemoveQuestion(ctx context.Context, bucketID, questionID string) (*domain.Bucket, error) {
	resp, err := s.api.RemoveBucketQuestion(ctx, bucketID, questionID)
	if err != nil {
		return nil, err
	}
	bucket := resp.ToDomain()
	s.replaceLocal(bucket)
	return &bucket, nil
}

// SendNow dispatches a bucket immediately to the target group. The operator
// override works regardless of the bucket's day assignment or active flag,
// but the destination must be explicit.
func (s *schedulerService) SendNow(ctx context.Context, bucketID, targetGroupID string) error {
	if strings.TrimSpace(targetGroupID) == "" {
		return domain.NewInvalidInputError("a target group is required to dispatch a bucket")
	}
	key := "send:" + bucketID
	if !s.begin(key) {
		return domain.NewInvalidInputError("this bucket is already being dispatched")
	}
	defer s.end(key)

	if err := s.api.SendBucket(ctx, bucketID, dto.SendBucketRequest{TargetGroupID: targetGroupID}); err != nil {
		return err
	}
	logger.Get().Info("bucket dispatched",
		zap.String("bucketID", bucketID),
		zap.String("targetGroupID", targetGroupID))
	return nil
}

// BulkUpdate applies day/active changes to several buckets in one call.
func (s *schedulerService) BulkUpdate(ctx context.Context, updates []dto.ScheduleUpdate) error {
	req := dto.BulkUpdateRequest{Schedules: updates}
	if errs := s.validator.ValidateBulkUpdate(req); len(errs) > 0 {
		return errs
	}
	return s.api.BulkUpdateSchedules(ctx, req)
}

func (s *schedulerService) reload(ctx context.Context, id string) (*domain.Bucket, error) {
	resp, err := s.api.GetBucket(ctx, id)
	if err != nil {
		return nil, err
	}
	bucket := resp.ToDomain()
	s.replaceLocal(bucket)
	return &bucket, nil
}

func (s *schedulerService) replaceLocal(bucket domain.Bucket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.buckets {
		if s.buckets[i].ID == bucket.ID {
			s.buckets[i] = bucket
			return
		}
	}
	s.buckets = append(s.buckets, bucket)
}

func (s *schedulerService) localBucket(id string) (*domain.Bucket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.buckets {
		if s.buckets[i].ID == id {
			b := s.buckets[i]
			return &b, true
		}
	}
	return nil, false
}

func (s *schedulerService) localQuestion(id string) (*domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.questions {
		if s.questions[i].ID == id {
			q := s.questions[i]
			return &q, true
		}
	}
	return nil, false
}

// begin marks a logical action in flight; it returns false when the same
// action is already outstanding, so submit controls stay disabled for the
// duration.
func (s *schedulerService) begin(key string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if s.inflight[key] {
		return false
	}
	s.inflight[key] = true
	return true
}

func (s *schedulerService) end(key string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	delete(s.inflight, key)
}
