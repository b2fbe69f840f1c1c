package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OpportunityRepository struct {
	collection *mongo.Collection
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{collection: db.Collection("opportunities")}
}

func (r *OpportunityRepository) CreateOpportunity(ctx context.Context, opp *models.Opportunity) (*models.Opportunity, error) {
	opp.CreatedAt = time.Now()
	opp.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, opp)
	if err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %v", err)
	}

	opp.ID = result.InsertedID.(primitive.ObjectID)
	return opp, nil
}

func (r *OpportunityRepository) GetOpportunityByID(ctx context.Context, id primitive.ObjectID) (*models.Opportunity, error) {
	var opp models.Opportunity
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&opp); err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %v", err)
	}
	return &opp, nil
}

// GetOpenOpportunities lists open postings, newest first.
func (r *OpportunityRepository) GetOpenOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	filter := bson.M{"status": models.OpportunityOpen}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %v", err)
	}
	defer cursor.Close(ctx)

	var opportunities []models.Opportunity
	if err := cursor.All(ctx, &opportunities); err != nil {
		return nil, fmt.Errorf("failed to decode opportunities: %v", err)
	}
	return opportunities, nil
}

// AddApplicant records an application; applying twice is a no-op.
func (r *OpportunityRepository) AddApplicant(ctx context.Context, oppID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oppID},
		bson.M{"$addToSet": bson.M{"applicants": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to apply: %v", err)
	}
	return nil
}

func (r *OpportunityRepository) RemoveApplicant(ctx context.Context, oppID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oppID},
		bson.M{"$pull": bson.M{"applicants": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to withdraw application: %v", err)
	}
	return nil
}

func (r *OpportunityRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update opportunity status: %v", err)
	}
	return nil
}

func (r *OpportunityRepository) DeleteOpportunity(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %v", err)
	}
	return nil
}
