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

type PodRepository struct {
	collection *mongo.Collection
}

func NewPodRepository(db *mongo.Database) *PodRepository {
	return &PodRepository{collection: db.Collection("pods")}
}

func (r *PodRepository) CreatePod(ctx context.Context, pod *models.Pod) (*models.Pod, error) {
	pod.CreatedAt = time.Now()
	pod.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, pod)
	if err != nil {
		return nil, fmt.Errorf("failed to create pod: %v", err)
	}

	pod.ID = result.InsertedID.(primitive.ObjectID)
	return pod, nil
}

func (r *PodRepository) GetPodByID(ctx context.Context, id primitive.ObjectID) (*models.Pod, error) {
	var pod models.Pod
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pod); err != nil {
		return nil, fmt.Errorf("failed to get pod: %v", err)
	}
	return &pod, nil
}

func (r *PodRepository) GetAllPods(ctx context.Context) ([]models.Pod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pods: %v", err)
	}
	defer cursor.Close(ctx)

	var pods []models.Pod
	if err := cursor.All(ctx, &pods); err != nil {
		return nil, fmt.Errorf("failed to decode pods: %v", err)
	}
	return pods, nil
}

// AddMember joins a user to the pod; repeated joins are no-ops.
func (r *PodRepository) AddMember(ctx context.Context, podID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": podID},
		bson.M{"$addToSet": bson.M{"members": userID}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to join pod: %v", err)
	}
	return nil
}

func (r *PodRepository) RemoveMember(ctx context.Context, podID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": podID},
		bson.M{"$pull": bson.M{"members": userID}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to leave pod: %v", err)
	}
	return nil
}
