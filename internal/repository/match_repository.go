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

type MatchRepository struct {
	collection *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{collection: db.Collection("dna_matches")}
}

// UpsertMatch writes the score for a pair, overwriting any previous value.
// The unique index on pair_key keeps one document per unordered pair; when a
// concurrent upsert wins the insert, the retry lands as a plain update.
func (r *MatchRepository) UpsertMatch(ctx context.Context, userA, userB primitive.ObjectID, score int) error {
	pairKey := models.ChatPairKey(userA, userB)

	filter := bson.M{"pair_key": pairKey}
	set := bson.M{
		"score":      score,
		"updated_at": time.Now(),
	}

	_, err := r.collection.UpdateOne(ctx, filter,
		bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"pair_key": pairKey,
				"user_a":   userA,
				"user_b":   userB,
			},
		},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	}
	if err != nil {
		return fmt.Errorf("failed to upsert match: %v", err)
	}
	return nil
}

// GetMatchesForUser returns the user's matches, best score first.
func (r *MatchRepository) GetMatchesForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.DNAMatch, error) {
	filter := bson.M{"$or": []bson.M{{"user_a": userID}, {"user_b": userID}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %v", err)
	}
	defer cursor.Close(ctx)

	var matches []models.DNAMatch
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %v", err)
	}
	return matches, nil
}

// DeleteMatchesForUser removes every match involving the user.
func (r *MatchRepository) DeleteMatchesForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"$or": []bson.M{{"user_a": userID}, {"user_b": userID}}})
	if err != nil {
		return fmt.Errorf("failed to delete matches for user: %v", err)
	}
	return nil
}
