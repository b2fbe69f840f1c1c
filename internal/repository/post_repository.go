package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/foundic-app/foundic-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepository struct {
	collection *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{collection: db.Collection("posts")}
}

func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert post")
		return nil, fmt.Errorf("failed to create post: %v", err)
	}

	post.ID = result.InsertedID.(primitive.ObjectID)
	return post, nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to get post: %v", err)
	}
	return &post, nil
}

// GetFeed returns posts newest-first. When before is non-zero only posts
// created strictly earlier are returned, which gives the wall its cursor.
func (r *PostRepository) GetFeed(ctx context.Context, before time.Time, limit int64) ([]models.Post, error) {
	filter := bson.M{}
	if !before.IsZero() {
		filter["created_at"] = bson.M{"$lt": before}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %v", err)
	}
	return posts, nil
}

func (r *PostRepository) GetPostsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts by author: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %v", err)
	}
	return posts, nil
}

// AddLike records a like. $addToSet makes a repeated like a no-op.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to like post: %v", err)
	}
	return nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %v", err)
	}
	return nil
}

func (r *PostRepository) AddRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"reposts": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to repost: %v", err)
	}
	return nil
}

func (r *PostRepository) RemoveRepost(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"reposts": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove repost: %v", err)
	}
	return nil
}

// AddComment appends an embedded comment and returns it with its id set.
func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %v", err)
	}
	return nil
}

// AddReply appends a reply to an embedded comment using the positional operator.
func (r *PostRepository) AddReply(ctx context.Context, postID, commentID primitive.ObjectID, reply *models.Reply) error {
	reply.ID = primitive.NewObjectID()
	reply.CreatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$push": bson.M{"comments.$.replies": reply}},
	)
	if err != nil {
		return fmt.Errorf("failed to add reply: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("comment not found")
	}
	return nil
}

func (r *PostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %v", err)
	}
	return nil
}

// Leaderboard aggregates total likes received per author, best first.
func (r *PostRepository) Leaderboard(ctx context.Context, limit int64) ([]models.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"author_id":   1,
			"author_name": 1,
			"like_count":  bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$author_id",
			"author_name": bson.M{"$first": "$author_name"},
			"likes":       bson.M{"$sum": "$like_count"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "likes", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []models.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %v", err)
	}
	return entries, nil
}
