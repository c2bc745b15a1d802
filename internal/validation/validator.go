package validation

import (
	"strings"

	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality. Requests are rejected
// here before any network call is made.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// structErrors converts validator/v10 failures into domain field errors.
func (v *Validator) structErrors(req interface{}) domain.ValidationErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ValidationErrors{domain.NewInvalidValueError("request", err.Error())}
	}
	var errors domain.ValidationErrors
	for _, fe := range invalid {
		switch fe.Tag() {
		case "required":
			errors = append(errors, domain.NewMissingFieldError(fieldName(fe)))
		case "gte", "lte", "min", "max", "len":
			errors = append(errors, domain.NewInvalidValueError(fieldName(fe), "fails constraint "+fe.Tag()+"="+fe.Param()))
		case "email":
			errors = append(errors, domain.NewInvalidValueError(fieldName(fe), "is not a valid email address"))
		default:
			errors = append(errors, domain.NewInvalidValueError(fieldName(fe), "is invalid"))
		}
	}
	return errors
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}

// ValidateLoginRequest validates login credentials.
func (v *Validator) ValidateLoginRequest(req dto.LoginRequest) domain.ValidationErrors {
	return v.structErrors(req)
}

// ValidateQuestionRequest validates a question create request, including the
// checks struct tags cannot express: non-blank options and correct-answer
// label membership.
func (v *Validator) ValidateQuestionRequest(req dto.CreateQuestionRequest) domain.ValidationErrors {
	errors := v.structErrors(req)

	for i, opt := range req.Options {
		if strings.TrimSpace(opt) == "" {
			errors = append(errors, domain.NewInvalidValueError("options", "option "+domain.OptionLabel(i)+" must not be blank"))
		}
	}
	if req.CorrectAnswer != "" && !isOptionLabel(req.CorrectAnswer, len(req.Options)) {
		errors = append(errors, domain.NewInvalidValueError("correctAnswer", "must reference one of the option labels"))
	}
	if req.Topic != "" && !domain.Topic(req.Topic).Valid() {
		errors = append(errors, domain.NewInvalidValueError("topic", "is not a known topic"))
	}
	return errors
}

// ValidateBucketRequest validates the shared field set of bucket create and
// update requests.
func (v *Validator) ValidateBucketRequest(name, topic, dayOfWeek string, questionIDs []string, maxQuestions int) domain.ValidationErrors {
	errors := v.structErrors(dto.CreateBucketRequest{
		Name:         name,
		Topic:        topic,
		Questions:    questionIDs,
		MaxQuestions: maxQuestions,
		DayOfWeek:    dayOfWeek,
	})

	if topic != "" && !domain.Topic(topic).Valid() {
		errors = append(errors, domain.NewInvalidValueError("topic", "is not a known topic"))
	}
	if dayOfWeek != "" && !domain.Weekday(dayOfWeek).Valid() {
		errors = append(errors, domain.NewInvalidValueError("dayOfWeek", "is not a day of the week"))
	}
	if maxQuestions >= domain.MinBucketCapacity && len(questionIDs) > maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("questions", len(questionIDs), 1, maxQuestions))
	}
	return errors
}

// ValidateBulkUpdate validates a bulk schedule update.
func (v *Validator) ValidateBulkUpdate(req dto.BulkUpdateRequest) domain.ValidationErrors {
	errors := v.structErrors(req)
	for _, s := range req.Schedules {
		if s.DayOfWeek != "" && !domain.Weekday(s.DayOfWeek).Valid() {
			errors = append(errors, domain.NewInvalidValueError("schedules", "day "+s.DayOfWeek+" is not a day of the week"))
		}
	}
	return errors
}

func isOptionLabel(label string, optionCount int) bool {
	for i := 0; i < optionCount; i++ {
		if domain.OptionLabel(i) == label {
			return true
		}
	}
	return false
}
