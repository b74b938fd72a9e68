package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

var _ submission.Repository = (*submissionRepository)(nil)

func NewSubmissionRepository(db *DB) *submissionRepository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) UpsertSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := submissionKey{userID: sub.UserID, question: sub.Question}
	if existing, ok := repo.db.table[key]; ok {
		sub.ID = existing.ID
	} else {
		sub.ID = uuid.New().String()
	}
	repo.db.table[key] = &sub
	return sub, nil
}

func (repo *submissionRepository) GetSubmission(ctx context.Context, userID, questionID string) (submission.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.table[submissionKey{userID: userID, question: questionID}]; ok {
		return *sub, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}
