package userRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new instance of MongoUserRepo.
func NewMongoUserRepo() UserRepository {
	return &MongoUserRepo{
		coll: database.DB().Collection("users"),
	}
}

// Create inserts a new user document.
func (repo *MongoUserRepo) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user document by id.
func (repo *MongoUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return repo.findOne(ctx, bson.M{"id": userID})
}

// GetByEmail retrieves a user document by email.
func (repo *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u models.User
	if err := repo.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &u, nil
}

// UpdateTokenHash stores the hash of the user's active auth token.
func (repo *MongoUserRepo) UpdateTokenHash(ctx context.Context, userID, tokenHash string) error {
	return repo.setField(ctx, userID, "token_hash", tokenHash)
}

// UpdateFCMToken stores the user's push notification token.
func (repo *MongoUserRepo) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	return repo.setField(ctx, userID, "fcm_token", fcmToken)
}

func (repo *MongoUserRepo) setField(ctx context.Context, userID, field, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("error updating user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
