package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasavipoluri/student-registry-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error

	// SetOTP stores a pending one-time code on the user document,
	// overwriting any previous code.
	SetOTP(ctx context.Context, username, otp string) error

	// ClearOTP removes the pending one-time code from the user document.
	ClearOTP(ctx context.Context, username string) error

	// SetCourseRegistered flips the course registration flag on the user.
	SetCourseRegistered(ctx context.Context, username string, registered bool) error
}

const userCollection = "user"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates a new MongoDB repository for users. It
// ensures the unique username index exists and backfills the course
// registration flag on documents that predate it.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	_, err = collection.UpdateMany(
		ctx,
		bson.M{"course_registered": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"course_registered": false}},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to backfill course_registered flag")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.Collection(userCollection).InsertOne(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userMongoRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"username": username})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now(),
		},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"username": username}, update)
	return err
}

func (r *userMongoRepository) SetOTP(ctx context.Context, username, otp string) error {
	update := bson.M{
		"$set": bson.M{
			"otp":        otp,
			"updated_at": time.Now(),
		},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"username": username}, update)
	return err
}

func (r *userMongoRepository) ClearOTP(ctx context.Context, username string) error {
	update := bson.M{
		"$unset": bson.M{"otp": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"username": username}, update)
	return err
}

func (r *userMongoRepository) SetCourseRegistered(ctx context.Context, username string, registered bool) error {
	update := bson.M{
		"$set": bson.M{
			"course_registered": registered,
			"updated_at":        time.Now(),
		},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"username": username}, update)
	return err
}
