package domain

import "strings"

// BucketDraft is the client-local editing state of a bucket. A draft never
// touches the server; it is abandoned without effect when cancelled, and only
// Submit (via the scheduler service) issues a create or a full-replacement
// update.
type BucketDraft struct {
	ID           string
	OriginID     string // non-empty when editing an existing bucket
	Name         string
	Topic        Topic
	MaxQuestions int
	DayOfWeek    Weekday

	selected []string
}

// NewBucketDraft creates an empty draft with the default capacity and day.
// The id identifies the draft itself, not a server bucket.
func NewBucketDraft(id string) *BucketDraft {
	return &BucketDraft{
		ID:           id,
		MaxQuestions: MinBucketCapacity,
		DayOfWeek:    Monday,
	}
}

// DraftFromBucket seeds a draft from a bucket's current server state for
// editing in place.
func DraftFromBucket(id string, b *Bucket) *BucketDraft {
	d := &BucketDraft{
		ID:           id,
		OriginID:     b.ID,
		Name:         b.Name,
		Topic:        b.Topic,
		MaxQuestions: b.MaxQuestions,
		DayOfWeek:    b.DayOfWeek,
	}
	d.selected = append(d.selected, b.QuestionIDs()...)
	return d
}

// SetTopic assigns the draft topic. Changing the topic invalidates the
// in-progress selection: a selection from a different topic is no longer
// valid, so it is cleared.
func (d *BucketDraft) SetTopic(t Topic) error {
	if !t.Valid() {
		return NewValidationError("invalid topic: " + string(t))
	}
	if t != d.Topic {
		d.selected = nil
	}
	d.Topic = t
	return nil
}

// SetCapacity updates the capacity bound. It refuses values outside [5,10]
// and values below the current selection size.
func (d *BucketDraft) SetCapacity(n int) error {
	if n < MinBucketCapacity || n > MaxBucketCapacity {
		return NewValidationError("max questions must be between 5 and 10")
	}
	if n < len(d.selected) {
		return NewValidationError("capacity cannot be lower than the current selection size")
	}
	d.MaxQuestions = n
	return nil
}

// SetDay assigns the day-of-week.
func (d *BucketDraft) SetDay(day Weekday) error {
	if !day.Valid() {
		return NewValidationError("invalid day of week: " + string(day))
	}
	d.DayOfWeek = day
	return nil
}

// Selectable reports whether a question may be offered as a candidate:
// it must be active and share the draft's chosen topic. No question is
// selectable before a topic is chosen.
func (d *BucketDraft) Selectable(q *Question) bool {
	return q.IsActive && d.Topic != "" && q.Topic == d.Topic
}

// ToggleQuestion flips a question's membership in the selection.
// Deselection is always permitted. Selection is rejected for inactive or
// topic-mismatched questions, and is a no-op error once the selection size
// equals the capacity bound.
func (d *BucketDraft) ToggleQuestion(q *Question) error {
	if d.IsSelected(q.ID) {
		d.deselect(q.ID)
		return nil
	}
	if !q.IsActive {
		return NewInvalidInputError("inactive questions cannot be scheduled")
	}
	if d.Topic == "" {
		return NewInvalidInputError("choose a topic before selecting questions")
	}
	if q.Topic != d.Topic {
		return NewTopicMismatchError(d.Topic, q.Topic)
	}
	if len(d.selected) >= d.MaxQuestions {
		return NewCapacityExceededError(d.MaxQuestions)
	}
	d.selected = append(d.selected, q.ID)
	return nil
}

func (d *BucketDraft) deselect(id string) {
	for i, sel := range d.selected {
		if sel == id {
			d.selected = append(d.selected[:i], d.selected[i+1:]...)
			return
		}
	}
}

// IsSelected reports whether the question id is in the current selection.
func (d *BucketDraft) IsSelected(id string) bool {
	for _, sel := range d.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Selected returns a copy of the selected question ids in selection order.
func (d *BucketDraft) Selected() []string {
	out := make([]string, len(d.selected))
	copy(out, d.selected)
	return out
}

// SelectionSize returns the number of selected questions.
func (d *BucketDraft) SelectionSize() int {
	return len(d.selected)
}

// CanSubmit reports whether the draft satisfies the submission gate:
// non-empty name, a chosen topic and at least one selected question.
func (d *BucketDraft) CanSubmit() bool {
	return strings.TrimSpace(d.Name) != "" && d.Topic != "" && len(d.selected) >= 1
}

// Reset clears the draft back to its initial empty state.
func (d *BucketDraft) Reset() {
	d.OriginID = ""
	d.Name = ""
	d.Topic = ""
	d.MaxQuestions = MinBucketCapacity
	d.DayOfWeek = Monday
	d.selected = nil
}
