package mongorepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/storage/database"
)

type UserRepository struct {
	col *mongo.Collection
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.UsersCollection)}
}

func (repo *UserRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	exclIDs := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		exclIDs = append(exclIDs, usr.ID)
	}

	check := func(field, value string, dupErr error) error {
		if value == "" {
			return nil
		}
		filter := bson.M{field: value}
		if len(exclIDs) > 0 {
			filter["_id"] = bson.M{"$nin": exclIDs}
		}
		n, err := repo.col.CountDocuments(ctx, filter)
		if err != nil {
			return errors.Wrapf(err, "counting users by %s", field)
		}
		if n > 0 {
			return dupErr
		}
		return nil
	}

	if err := check("username", username, user.ErrUsernameExists); err != nil {
		return err
	}
	return check("email", email, user.ErrEmailExists)
}

func (repo *UserRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	if _, err := repo.col.InsertOne(ctx, usr); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *UserRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var usr user.User
	if err := repo.col.FindOne(ctx, getFilterQuery(filter)).Decode(&usr); err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user")
	}
	return usr, nil
}

func (repo *UserRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	cur, err := repo.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	var users []user.User
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}

func (repo *UserRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.UpdatedAt = time.Now().UTC()
	res, err := repo.col.ReplaceOne(ctx, bson.M{"_id": usr.ID}, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "replacing user")
	}
	if res.MatchedCount == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *UserRepository) UpdateOrCreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		// reuse the existing document's ID; _id is immutable
		if existing, err := repo.GetUser(ctx, user.GetFilter{Username: usr.Username}); err == nil {
			usr.ID = existing.ID
			usr.CreatedAt = existing.CreatedAt
		} else if err == user.ErrNotFound {
			usr.ID = uuid.New().String()
			usr.CreatedAt = time.Now().UTC()
		} else {
			return user.User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err := repo.col.ReplaceOne(ctx, bson.M{"_id": usr.ID}, usr, options.Replace().SetUpsert(true))
	if err != nil {
		return user.User{}, errors.Wrap(err, "upserting user")
	}
	return usr, nil
}

func (repo *UserRepository) SetUserLanguage(ctx context.Context, id, language string) error {
	_, err := repo.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"language": language, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return errors.Wrap(err, "setting user language")
}

func (repo *UserRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	usr.LastLogin = time.Now().UTC()
	_, err := repo.col.UpdateOne(ctx, bson.M{"_id": usr.ID}, bson.M{"$set": bson.M{"last_login": usr.LastLogin}})
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	return usr, nil
}

func getFilterQuery(filter user.GetFilter) bson.M {
	q := bson.M{}
	if filter.ID != "" {
		q["_id"] = filter.ID
	}
	if filter.Username != "" {
		q["username"] = filter.Username
	}
	if filter.UsernameOrEmail != "" {
		q["$or"] = bson.A{
			bson.M{"username": filter.UsernameOrEmail},
			bson.M{"email": filter.UsernameOrEmail},
		}
	}
	return q
}
