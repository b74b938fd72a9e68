package chat

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("transcript not found")

type (
	Repository interface {
		// ReplaceTranscript stores the Transcript for Transcript.UserID wholesale,
		// creating the document if absent.
		ReplaceTranscript(ctx context.Context, tr Transcript) error
		GetTranscript(ctx context.Context, userID string) (Transcript, error)
	}

	ServiceInterface interface {
		SaveTranscript(ctx context.Context, userID string, msgs []Message, language string) (Transcript, error)
		History(ctx context.Context, userID string) (Transcript, error)
		Clear(ctx context.Context, userID string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SaveTranscript replaces the stored transcript for the user with `msgs`.
// Every message is stamped with the given language; messages that already carry
// a timestamp keep it, new ones are stamped with the current time.
// Callers pass the complete history each time; there is no incremental append.
func (svc *Service) SaveTranscript(ctx context.Context, userID string, msgs []Message, language string) (Transcript, error) {
	now := time.Now().UTC()
	stamped := make([]Message, 0, len(msgs))
	for _, msg := range msgs {
		msg.Language = language
		if msg.Timestamp.IsZero() {
			msg.Timestamp = now
		}
		stamped = append(stamped, msg)
	}

	tr := Transcript{UserID: userID, Messages: stamped}
	if err := svc.repo.ReplaceTranscript(ctx, tr); err != nil {
		return Transcript{}, errors.Wrap(err, "replacing transcript")
	}
	return tr, nil
}

// History returns the stored transcript; a user without one gets an empty transcript.
func (svc *Service) History(ctx context.Context, userID string) (Transcript, error) {
	tr, err := svc.repo.GetTranscript(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Transcript{UserID: userID, Messages: []Message{}}, nil
		}
		return Transcript{}, err
	}
	if tr.Messages == nil {
		tr.Messages = []Message{}
	}
	return tr, nil
}

// Clear persists an empty message list for the user; the next save starts fresh.
func (svc *Service) Clear(ctx context.Context, userID string) error {
	return svc.repo.ReplaceTranscript(ctx, Transcript{UserID: userID, Messages: []Message{}})
}
