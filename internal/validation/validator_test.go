package validation

import (
	"testing"

	"mrcog-admin/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestionRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.CreateQuestionRequest{
		Question:      "Which hormone maintains pregnancy?",
		Options:       []string{"Progesterone", "Estrogen", "Oxytocin", "Prolactin"},
		CorrectAnswer: "A",
		Explanation:   "Progesterone maintains the endometrium.",
		Topic:         "Obstetrics",
	}
	assert.Empty(t, v.ValidateQuestionRequest(valid))

	missing := valid
	missing.Question = ""
	assert.NotEmpty(t, v.ValidateQuestionRequest(missing))

	badLabel := valid
	badLabel.CorrectAnswer = "E"
	assert.NotEmpty(t, v.ValidateQuestionRequest(badLabel))

	blankOption := valid
	blankOption.Options = []string{"Progesterone", "  ", "Oxytocin", "Prolactin"}
	assert.NotEmpty(t, v.ValidateQuestionRequest(blankOption))

	badTopic := valid
	badTopic.Topic = "Cardiology"
	assert.NotEmpty(t, v.ValidateQuestionRequest(badTopic))
}

func TestValidateBucketRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateBucketRequest("Monday Obstetrics", "Obstetrics", "Monday", []string{"q1", "q2"}, 5))

	errs := v.ValidateBucketRequest("", "Obstetrics", "Monday", []string{"q1"}, 5)
	assert.NotEmpty(t, errs, "name is required")

	errs = v.ValidateBucketRequest("Bucket", "Obstetrics", "Monday", nil, 5)
	assert.NotEmpty(t, errs, "at least one question is required")

	errs = v.ValidateBucketRequest("Bucket", "Obstetrics", "Monday", []string{"q1"}, 4)
	assert.NotEmpty(t, errs, "capacity below 5")

	errs = v.ValidateBucketRequest("Bucket", "Obstetrics", "Monday", []string{"q1"}, 11)
	assert.NotEmpty(t, errs, "capacity above 10")

	errs = v.ValidateBucketRequest("Bucket", "Obstetrics", "Someday", []string{"q1"}, 5)
	assert.NotEmpty(t, errs, "invalid day")

	errs = v.ValidateBucketRequest("Bucket", "Obstetrics", "Monday",
		[]string{"q1", "q2", "q3", "q4", "q5", "q6"}, 5)
	assert.NotEmpty(t, errs, "more questions than capacity")
}

func TestValidateBulkUpdate(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateBulkUpdate(dto.BulkUpdateRequest{
		Schedules: []dto.ScheduleUpdate{{ID: "b1", DayOfWeek: "Tuesday", IsActive: true}},
	}))

	assert.NotEmpty(t, v.ValidateBulkUpdate(dto.BulkUpdateRequest{}))

	assert.NotEmpty(t, v.ValidateBulkUpdate(dto.BulkUpdateRequest{
		Schedules: []dto.ScheduleUpdate{{ID: "b1", DayOfWeek: "Noday", IsActive: true}},
	}))
}

func TestValidateLoginRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateLoginRequest(dto.LoginRequest{Email: "admin@mrcog.com", Password: "secret"}))
	assert.NotEmpty(t, v.ValidateLoginRequest(dto.LoginRequest{Email: "not-an-email", Password: "secret"}))
	assert.NotEmpty(t, v.ValidateLoginRequest(dto.LoginRequest{Email: "admin@mrcog.com"}))
}
