package inmemdb

import (
	"context"

	"github.com/trezcool/darasa/core/chat"
)

type chatRepository struct {
	db *transcriptTable
}

var _ chat.Repository = (*chatRepository)(nil)

func NewChatRepository(db *DB) *chatRepository {
	return &chatRepository{db: db.transcript}
}

func (repo *chatRepository) ReplaceTranscript(ctx context.Context, tr chat.Transcript) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	msgs := make([]chat.Message, len(tr.Messages))
	copy(msgs, tr.Messages)
	tr.Messages = msgs
	repo.db.table[tr.UserID] = &tr
	return nil
}

func (repo *chatRepository) GetTranscript(ctx context.Context, userID string) (chat.Transcript, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tr, ok := repo.db.table[userID]; ok {
		out := *tr
		out.Messages = make([]chat.Message, len(tr.Messages))
		copy(out.Messages, tr.Messages)
		return out, nil
	}
	return chat.Transcript{}, chat.ErrNotFound
}
