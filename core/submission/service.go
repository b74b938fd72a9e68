package submission

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/question"
)

var (
	// errors
	ErrNotFound        = errors.New("submission not found")
	errUnknownQuestion = errors.New("unknown question")
)

type (
	// Submission is a user's saved code answer for one question;
	// at most one live copy exists per (user, question) pair.
	Submission struct {
		ID        string    `json:"id" bson:"_id"`
		UserID    string    `json:"user_id" bson:"user_id"`
		Question  string    `json:"question" bson:"question"`
		Answer    string    `json:"answer" bson:"answer"`
		Timestamp time.Time `json:"timestamp" bson:"timestamp"` // UTC
	}

	Repository interface {
		// UpsertSubmission replaces the Submission stored for
		// (Submission.UserID, Submission.Question), creating it if absent.
		UpsertSubmission(ctx context.Context, sub Submission) (Submission, error)
		GetSubmission(ctx context.Context, userID, questionID string) (Submission, error)
	}

	ServiceInterface interface {
		Save(ctx context.Context, userID, questionID, answer string) (Submission, error)
		Latest(ctx context.Context, userID, questionID string) (Submission, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save upserts the user's answer for the given question, overwriting any prior one.
// The answer content itself is not validated; it is whatever the student pasted.
func (svc *Service) Save(ctx context.Context, userID, questionID, answer string) (Submission, error) {
	if _, ok := question.Get(questionID); !ok {
		return Submission{}, core.NewValidationError(errUnknownQuestion,
			core.FieldError{Field: "question", Error: errUnknownQuestion.Error()})
	}

	sub := Submission{
		UserID:    userID,
		Question:  questionID,
		Answer:    answer,
		Timestamp: time.Now().UTC(),
	}
	return svc.repo.UpsertSubmission(ctx, sub)
}

// Latest returns the current Submission for the (user, question) pair, or ErrNotFound.
func (svc *Service) Latest(ctx context.Context, userID, questionID string) (Submission, error) {
	return svc.repo.GetSubmission(ctx, userID, questionID)
}
