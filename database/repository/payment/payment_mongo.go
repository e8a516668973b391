package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo constructs a new instance of MongoPaymentRepo.
func NewMongoPaymentRepo() PaymentRepository {
	return &MongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
}

// Create inserts a new payment document.
func (repo *MongoPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("error creating payment %s: %w", p.TransactionID, err)
	}
	return nil
}

// GetByTransactionID retrieves a payment document by its transaction id.
func (repo *MongoPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Payment
	filter := bson.M{"transaction_id": transactionID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching payment %s: %w", transactionID, err)
	}
	return &p, nil
}

// MarkSettled flips a pending payment to a terminal status. The filter pins
// status to "pending" so a settled payment can never transition twice.
func (repo *MongoPaymentRepo) MarkSettled(ctx context.Context, transactionID string, status models.PaymentStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("refusing to settle payment %s to non-terminal status %q", transactionID, status)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"transaction_id": transactionID, "status": models.PaymentPending}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error settling payment %s: %w", transactionID, err)
	}
	if res.MatchedCount == 0 {
		// Either unknown id or already terminal; distinguish for the caller.
		if _, err := repo.GetByTransactionID(ctx, transactionID); err != nil {
			return err
		}
		return ErrAlreadySettled
	}
	return nil
}

// ListStalePending returns pending payments created before the cutoff.
func (repo *MongoPaymentRepo) ListStalePending(ctx context.Context, cutoff time.Time) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.PaymentPending, "created_at": bson.M{"$lt": cutoff}}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing stale pending payments: %w", err)
	}
	defer cursor.Close(ctx)

	var stale []models.Payment
	for cursor.Next(ctx) {
		var p models.Payment
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("error decoding payment: %w", err)
		}
		stale = append(stale, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return stale, nil
}
