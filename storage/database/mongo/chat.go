package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/darasa/core/chat"
	"github.com/trezcool/darasa/storage/database"
)

type ChatRepository struct {
	col *mongo.Collection
}

var _ chat.Repository = (*ChatRepository)(nil)

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection(database.ChatHistoryCollection)}
}

func (repo *ChatRepository) ReplaceTranscript(ctx context.Context, tr chat.Transcript) error {
	_, err := repo.col.ReplaceOne(ctx, bson.M{"_id": tr.UserID}, tr, options.Replace().SetUpsert(true))
	return errors.Wrap(err, "replacing transcript")
}

func (repo *ChatRepository) GetTranscript(ctx context.Context, userID string) (chat.Transcript, error) {
	var tr chat.Transcript
	if err := repo.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&tr); err != nil {
		if err == mongo.ErrNoDocuments {
			return chat.Transcript{}, chat.ErrNotFound
		}
		return chat.Transcript{}, errors.Wrap(err, "finding transcript")
	}
	return tr, nil
}
