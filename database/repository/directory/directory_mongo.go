package directoryRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDirectoryRepo implements DirectoryRepository using MongoDB.
type MongoDirectoryRepo struct {
	hospitalColl *mongo.Collection
	doctorColl   *mongo.Collection
}

// NewMongoDirectoryRepo constructs a new instance of MongoDirectoryRepo.
func NewMongoDirectoryRepo() DirectoryRepository {
	db := database.DB()
	return &MongoDirectoryRepo{
		hospitalColl: db.Collection("hospitals"),
		doctorColl:   db.Collection("doctors"),
	}
}

// ListHospitals returns all hospitals sorted by rating descending.
func (repo *MongoDirectoryRepo) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	cursor, err := repo.hospitalColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing hospitals: %w", err)
	}
	defer cursor.Close(ctx)

	var hospitals []models.Hospital
	for cursor.Next(ctx) {
		var h models.Hospital
		if err := cursor.Decode(&h); err != nil {
			return nil, fmt.Errorf("error decoding hospital: %w", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return hospitals, nil
}

// GetHospitalByID retrieves a hospital document by id.
func (repo *MongoDirectoryRepo) GetHospitalByID(ctx context.Context, hospitalID string) (*models.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var h models.Hospital
	if err := repo.hospitalColl.FindOne(ctx, bson.M{"id": hospitalID}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching hospital %s: %w", hospitalID, err)
	}
	return &h, nil
}

// ListDoctorsByHospital returns available doctors for a hospital.
func (repo *MongoDirectoryRepo) ListDoctorsByHospital(ctx context.Context, hospitalID string) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"hospital_id": hospitalID, "available": true}
	cursor, err := repo.doctorColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing doctors for hospital %s: %w", hospitalID, err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("error decoding doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return doctors, nil
}

// GetDoctorByID retrieves a doctor document by id.
func (repo *MongoDirectoryRepo) GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d models.Doctor
	if err := repo.doctorColl.FindOne(ctx, bson.M{"id": doctorID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching doctor %s: %w", doctorID, err)
	}
	return &d, nil
}
