package domain

import (
	"strings"
	"time"
)

// Weekday is a day-of-week assignment for a bucket. String values match the
// server representation.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the seven days in schedule order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseWeekday resolves a day name case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays() {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", NewValidationError("invalid day of week: " + s)
}

func (d Weekday) Valid() bool {
	for _, known := range Weekdays() {
		if d == known {
			return true
		}
	}
	return false
}

// Capacity bounds for a bucket's question count.
const (
	MinBucketCapacity = 5
	MaxBucketCapacity = 10
)

// Bucket is a named, capacity-bounded, topic-and-day-scoped collection of
// questions slated for dispatch by the bot. QuestionCount, RemainingCapacity
// and CompletionPercent are computed by the server; after any create or
// update the authoritative bucket state must be reloaded rather than trusting
// a local optimistic copy.
type Bucket struct {
	ID           string
	Name         string
	Topic        Topic
	Questions    []Question
	MaxQuestions int
	DayOfWeek    Weekday
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TimesSent    int
	LastSentAt   *time.Time

	// Server-derived fields.
	QuestionCount     int
	RemainingCapacity int
	CompletionPercent float64
}

// Validate checks the client-enforceable invariants of a bucket.
func (b *Bucket) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return NewValidationError("name is required")
	}
	if !b.Topic.Valid() {
		return NewValidationError("invalid topic: " + string(b.Topic))
	}
	if !b.DayOfWeek.Valid() {
		return NewValidationError("invalid day of week: " + string(b.DayOfWeek))
	}
	if b.MaxQuestions < MinBucketCapacity || b.MaxQuestions > MaxBucketCapacity {
		return NewValidationError("max questions must be between 5 and 10")
	}
	if len(b.Questions) > b.MaxQuestions {
		return NewValidationError("bucket holds more questions than its capacity")
	}
	for _, q := range b.Questions {
		if q.Topic != b.Topic {
			return NewValidationError("question " + q.ID + " does not match the bucket topic")
		}
	}
	return nil
}

// LocalQuestionCount prefers the server-computed count and falls back to the
// length of the embedded collection when the server omitted it.
func (b *Bucket) LocalQuestionCount() int {
	if b.QuestionCount > 0 {
		return b.QuestionCount
	}
	return len(b.Questions)
}

// QuestionIDs returns the member question identifiers in order.
func (b *Bucket) QuestionIDs() []string {
	ids := make([]string, 0, len(b.Questions))
	for _, q := range b.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}
