package dto

import (
	"net/url"
	"strconv"
	"time"

	"mrcog-admin/internal/domain"
)

// QuestionResponse represents a question in the API response.
type QuestionResponse struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	Topic         string    `json:"topic"`
	Difficulty    string    `json:"difficulty,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Normalize guarantees a canonical shape before any business logic runs:
// absent collections become empty, never nil.
func (r *QuestionResponse) Normalize() {
	if r.Options == nil {
		r.Options = []string{}
	}
}

// ToDomain maps the wire representation onto the domain entity.
func (r *QuestionResponse) ToDomain() domain.Question {
	return domain.Question{
		ID:            r.ID,
		Text:          r.Question,
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
		Topic:         domain.Topic(r.Topic),
		Difficulty:    domain.DifficultyFromString(r.Difficulty),
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
	}
}

// QuestionListResponse wraps a page of questions.
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

func (r *QuestionListResponse) Normalize() {
	if r.Questions == nil {
		r.Questions = []QuestionResponse{}
	}
	for i := range r.Questions {
		r.Questions[i].Normalize()
	}
}

// ToDomain maps every page entry onto domain questions.
func (r *QuestionListResponse) ToDomain() []domain.Question {
	out := make([]domain.Question, 0, len(r.Questions))
	for i := range r.Questions {
		out = append(out, r.Questions[i].ToDomain())
	}
	return out
}

// CreateQuestionRequest is the payload for POST /questions.
type CreateQuestionRequest struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation" validate:"required"`
	Topic         string   `json:"topic" validate:"required"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// UpdateQuestionRequest is the payload for PUT /questions/{id}. Fields are
// optional; the server patches what is present.
type UpdateQuestionRequest struct {
	Question      *string  `json:"question,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *string  `json:"correctAnswer,omitempty"`
	Explanation   *string  `json:"explanation,omitempty"`
	Topic         *string  `json:"topic,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

// ToggleRequest flips an active flag via PATCH .../toggle.
type ToggleRequest struct {
	IsActive bool `json:"isActive"`
}

// ListParams are the common list filters. Zero values are omitted from the
// query string.
type ListParams struct {
	Topic     string
	Search    string
	DayOfWeek string
	IsActive  *bool
	Page      int
	Limit     int
}

// AllItems requests a page large enough to exceed any realistic collection
// size; the scheduler needs the complete set client-side for its grouping
// views rather than a paged subset.
func AllItems() ListParams {
	return ListParams{Page: 1, Limit: 1000}
}

// Values encodes the params as URL query values.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Topic != "" {
		v.Set("topic", p.Topic)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.DayOfWeek != "" {
		v.Set("dayOfWeek", p.DayOfWeek)
	}
	if p.IsActive != nil {
		v.Set("isActive", strconv.FormatBool(*p.IsActive))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}
