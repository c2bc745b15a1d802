package dto

import (
	"time"

	"mrcog-admin/internal/domain"
)

// BucketResponse represents a question bucket in the API response.
// questionCount, remainingCapacity and completionPercentage are computed by
// the server.
type BucketResponse struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Topic             string             `json:"topic"`
	Questions         []QuestionResponse `json:"questions"`
	MaxQuestions      int                `json:"maxQuestions"`
	DayOfWeek         string             `json:"dayOfWeek"`
	IsActive          bool               `json:"isActive"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	TimesSent         int                `json:"timesSent"`
	LastSentAt        *time.Time         `json:"lastSentAt,omitempty"`
	QuestionCount     int                `json:"questionCount"`
	RemainingCapacity int                `json:"remainingCapacity"`
	CompletionPercent float64            `json:"completionPercentage"`
}

func (r *BucketResponse) Normalize() {
	if r.Questions == nil {
		r.Questions = []QuestionResponse{}
	}
	for i := range r.Questions {
		r.Questions[i].Normalize()
	}
}

func (r *BucketResponse) ToDomain() domain.Bucket {
	questions := make([]domain.Question, 0, len(r.Questions))
	for i := range r.Questions {
		questions = append(questions, r.Questions[i].ToDomain())
	}
	return domain.Bucket{
		ID:                r.ID,
		Name:              r.Name,
		Topic:             domain.Topic(r.Topic),
		Questions:         questions,
		MaxQuestions:      r.MaxQuestions,
		DayOfWeek:         domain.Weekday(r.DayOfWeek),
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		TimesSent:         r.TimesSent,
		LastSentAt:        r.LastSentAt,
		QuestionCount:     r.QuestionCount,
		RemainingCapacity: r.RemainingCapacity,
		CompletionPercent: r.CompletionPercent,
	}
}

// BucketListResponse wraps a page of buckets.
type BucketListResponse struct {
	Buckets []BucketResponse `json:"buckets"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

func (r *BucketListResponse) Normalize() {
	if r.Buckets == nil {
		r.Buckets = []BucketResponse{}
	}
	for i := range r.Buckets {
		r.Buckets[i].Normalize()
	}
}

func (r *BucketListResponse) ToDomain() []domain.Bucket {
	out := make([]domain.Bucket, 0, len(r.Buckets))
	for i := range r.Buckets {
		out = append(out, r.Buckets[i].ToDomain())
	}
	return out
}

// CreateBucketRequest is the payload for POST /scheduling/buckets. Questions
// carries identifiers, not embedded records.
type CreateBucketRequest struct {
	Name         string   `json:"name" validate:"required"`
	Topic        string   `json:"topic" validate:"required"`
	Questions    []string `json:"questions" validate:"required,min=1"`
	MaxQuestions int      `json:"maxQuestions" validate:"required,gte=5,lte=10"`
	DayOfWeek    string   `json:"dayOfWeek" validate:"required"`
}

// UpdateBucketRequest is the payload for PUT /scheduling/buckets/{id}.
// Updates are full-field replacements, not differential patches; the server
// recomputes the derived fields.
type UpdateBucketRequest struct {
	Name         string   `json:"name" validate:"required"`
	Topic        string   `json:"topic" validate:"required"`
	Questions    []string `json:"questions" validate:"required,min=1"`
	MaxQuestions int      `json:"maxQuestions" validate:"required,gte=5,lte=10"`
	DayOfWeek    string   `json:"dayOfWeek" validate:"required"`
}

// SendBucketRequest dispatches a bucket immediately to a destination group,
// independent of its day assignment or active flag.
type SendBucketRequest struct {
	TargetGroupID string `json:"targetGroupId" validate:"required"`
}

// ScheduleUpdate is one entry of a bulk schedule update.
type ScheduleUpdate struct {
	ID        string `json:"id" validate:"required"`
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
	IsActive  bool   `json:"isActive"`
}

// BulkUpdateRequest is the payload for PUT /scheduling/bulk-update.
type BulkUpdateRequest struct {
	Schedules []ScheduleUpdate `json:"schedules" validate:"required,min=1,dive"`
}

// DayScheduleResponse is the schedule for a single day.
type DayScheduleResponse struct {
	DayOfWeek string           `json:"dayOfWeek"`
	Buckets   []BucketResponse `json:"buckets"`
}

func (r *DayScheduleResponse) Normalize() {
	if r.Buckets == nil {
		r.Buckets = []BucketResponse{}
	}
	for i := range r.Buckets {
		r.Buckets[i].Normalize()
	}
}

// WeeklyScheduleResponse is the full week overview.
type WeeklyScheduleResponse struct {
	Days []DayScheduleResponse `json:"days"`
}

func (r *WeeklyScheduleResponse) Normalize() {
	if r.Days == nil {
		r.Days = []DayScheduleResponse{}
	}
	for i := range r.Days {
		r.Days[i].Normalize()
	}
}

// TopicScheduleResponse is the per-topic schedule summary.
type TopicScheduleResponse struct {
	Topic   string           `json:"topic"`
	Buckets []BucketResponse `json:"buckets"`
}

func (r *TopicScheduleResponse) Normalize() {
	if r.Buckets == nil {
		r.Buckets = []BucketResponse{}
	}
	for i := range r.Buckets {
		r.Buckets[i].Normalize()
	}
}
