package domain

import (
	"strings"
	"time"
)

// Topic is one value from the fixed MRCOG taxonomy. Both questions and
// buckets are partitioned by it.
type Topic string

const (
	TopicObstetrics           Topic = "Obstetrics"
	TopicGynecology           Topic = "Gynecology"
	TopicReproductiveMedicine Topic = "Reproductive Medicine"
	TopicFetalMedicine        Topic = "Fetal Medicine"
	TopicGynecologicalOnc     Topic = "Gynecological Oncology"
	TopicUrogynecology        Topic = "Urogynecology"
	TopicGeneralPractice      Topic = "General Practice"
	TopicEmergencyMedicine    Topic = "Emergency Medicine"
	TopicSurgery              Topic = "Surgery"
)

// Topics lists the taxonomy in display order.
func Topics() []Topic {
	return []Topic{
		TopicObstetrics,
		TopicGynecology,
		TopicReproductiveMedicine,
		TopicFetalMedicine,
		TopicGynecologicalOnc,
		TopicUrogynecology,
		TopicGeneralPractice,
		TopicEmergencyMedicine,
		TopicSurgery,
	}
}

// ParseTopic resolves a topic name case-insensitively against the taxonomy.
func ParseTopic(s string) (Topic, error) {
	for _, t := range Topics() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", NewValidationError("invalid topic: " + s)
}

func (t Topic) Valid() bool {
	for _, known := range Topics() {
		if t == known {
			return true
		}
	}
	return false
}

// Difficulty levels match the server representation (1: Easy, 2: Medium, 3: Hard).
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

func DifficultyFromString(diff string) Difficulty {
	switch strings.ToLower(diff) {
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Easy"
	}
}

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// OptionLabel returns the positional label for an option index: A, B, C, D.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// Question is a single multiple-choice question in the bank. Questions are
// soft-deactivated via IsActive rather than hard-deleted in the normal flows.
type Question struct {
	ID            string
	Text          string
	Options       []string
	CorrectAnswer string // positional label of the correct option (A..D)
	Explanation   string
	Topic         Topic
	Difficulty    Difficulty
	IsActive      bool
	CreatedAt     time.Time
}

// NewQuestion creates a new active Question instance
func NewQuestion(text string, options []string, correctAnswer, explanation string, topic Topic, difficulty Difficulty) *Question {
	return &Question{
		Text:          text,
		Options:       options,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
		Topic:         topic,
		Difficulty:    difficulty,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) != OptionCount {
		return NewValidationError("exactly four options are required")
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError("option " + OptionLabel(i) + " must not be empty")
		}
	}
	if !q.hasOptionLabel(q.CorrectAnswer) {
		return NewValidationError("correct answer must reference one of the option labels")
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return NewValidationError("explanation is required")
	}
	if !q.Topic.Valid() {
		return NewValidationError("invalid topic: " + string(q.Topic))
	}
	return nil
}

func (q *Question) hasOptionLabel(label string) bool {
	for i := range q.Options {
		if OptionLabel(i) == label {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether the question matches a free-text filter,
// case-insensitively, against its text or topic. An empty query matches.
func (q *Question) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	return strings.Contains(strings.ToLower(q.Text), needle) ||
		strings.Contains(strings.ToLower(string(q.Topic)), needle)
}
