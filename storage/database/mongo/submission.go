package mongorepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/darasa/core/submission"
	"github.com/trezcool/darasa/storage/database"
)

type SubmissionRepository struct {
	col *mongo.Collection
}

var _ submission.Repository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection(database.SubmissionsCollection)}
}

func (repo *SubmissionRepository) UpsertSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	filter := bson.M{"user_id": sub.UserID, "question": sub.Question}
	update := bson.M{
		"$set": bson.M{
			"answer":    sub.Answer,
			"timestamp": sub.Timestamp,
		},
		"$setOnInsert": bson.M{
			"_id":      uuid.New().String(),
			"user_id":  sub.UserID,
			"question": sub.Question,
		},
	}
	_, err := repo.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "upserting submission")
	}
	return repo.GetSubmission(ctx, sub.UserID, sub.Question)
}

func (repo *SubmissionRepository) GetSubmission(ctx context.Context, userID, questionID string) (submission.Submission, error) {
	var sub submission.Submission
	filter := bson.M{"user_id": userID, "question": questionID}
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if err := repo.col.FindOne(ctx, filter, opts).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, errors.Wrap(err, "finding submission")
	}
	return sub, nil
}
