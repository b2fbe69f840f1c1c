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
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// unique index on email catches concurrent registrations the
		// pre-insert lookup missed
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email already in use")
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %v", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %v", err)
	}
	return &user, nil
}

// GetUserByVerifyToken retrieves a user by their email verification token.
func (r *UserRepository) GetUserByVerifyToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"verify_token": token}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by verification token: %v", err)
	}
	return &user, nil
}

// GetUserByResetToken retrieves a user by their password reset token.
func (r *UserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"reset_token": token}).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by reset token: %v", err)
	}
	return &user, nil
}

// UpdateUser applies a partial update and returns the fresh document.
func (r *UserRepository) UpdateUser(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	updates["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	return r.GetUserByID(ctx, id)
}

// DeleteUser deletes a user from the database.
func (r *UserRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	logrus.WithField("userID", id.Hex()).Info("User deleted successfully")
	return nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, &user)
	}

	return users, nil
}

// SearchUsers finds users whose name matches the query, case-insensitively.
func (r *UserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	filter := bson.M{"name": bson.M{"$regex": query, "$options": "i"}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	return users, nil
}

// GetUsersByIDs fetches user details for a list of ObjectIDs in one query.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by IDs: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	return users, nil
}

// AddFollow adds actor to target's followers and target to actor's following
// inside one transaction, so the two denormalized views cannot drift apart.
// $addToSet keeps the operation idempotent.
func (r *UserRepository) AddFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.collection.UpdateOne(sc,
			bson.M{"_id": targetID},
			bson.M{"$addToSet": bson.M{"followers": actorID}},
		); err != nil {
			return fmt.Errorf("failed to add follower to user %s: %v", targetID.Hex(), err)
		}
		if _, err := r.collection.UpdateOne(sc,
			bson.M{"_id": actorID},
			bson.M{"$addToSet": bson.M{"following": targetID}},
		); err != nil {
			return fmt.Errorf("failed to add following to user %s: %v", actorID.Hex(), err)
		}
		return nil
	})
}

// RemoveFollow is the exact inverse of AddFollow.
func (r *UserRepository) RemoveFollow(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.collection.UpdateOne(sc,
			bson.M{"_id": targetID},
			bson.M{"$pull": bson.M{"followers": actorID}},
		); err != nil {
			return fmt.Errorf("failed to remove follower from user %s: %v", targetID.Hex(), err)
		}
		if _, err := r.collection.UpdateOne(sc,
			bson.M{"_id": actorID},
			bson.M{"$pull": bson.M{"following": targetID}},
		); err != nil {
			return fmt.Errorf("failed to remove following from user %s: %v", actorID.Hex(), err)
		}
		return nil
	})
}

// RemoveUserFromGraph pulls the id out of every follower/following array,
// used by the account deletion flow.
func (r *UserRepository) RemoveUserFromGraph(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{},
		bson.M{"$pull": bson.M{"followers": id, "following": id}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove user from follow graph: %v", err)
	}
	return nil
}

// IncrementCoins adjusts the user's coin balance by delta.
func (r *UserRepository) IncrementCoins(ctx context.Context, id primitive.ObjectID, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"coins": delta}})
	if err != nil {
		return fmt.Errorf("failed to increment coins: %v", err)
	}
	return nil
}

// UpdateLastActive stamps the user's last activity time.
func (r *UserRepository) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_active_at": time.Now()}})
	return err
}

// GetSurveyedUsers returns every user that has submitted survey answers.
func (r *UserRepository) GetSurveyedUsers(ctx context.Context) ([]models.User, error) {
	filter := bson.M{"survey_answers": bson.M{"$exists": true, "$ne": nil}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch surveyed users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode surveyed users: %v", err)
	}
	return users, nil
}

func (r *UserRepository) inTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
