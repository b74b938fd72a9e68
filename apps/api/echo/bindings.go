package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/question"
	"github.com/trezcool/darasa/core/submission"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate(validate *validator.Validate) error {
	r.Username = core.CleanString(r.Username, true /* lower */)
	return validate.Struct(r)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

// SubmitRequest carries the code pasted in the submission text area; the content
// itself is not validated.
type SubmitRequest struct {
	Answer string `json:"answer"`
}

// QuestionDetailResponse is everything the main panel needs to render a question:
// the statement, its images and the user's prior answer for the text area pre-fill.
type QuestionDetailResponse struct {
	Question         question.Question      `json:"question"`
	LatestSubmission *submission.Submission `json:"latest_submission,omitempty"`
}
