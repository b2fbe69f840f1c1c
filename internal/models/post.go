package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post type tags shown as filters on the wall.
const (
	PostTypeUpdate       = "update"
	PostTypeIdea         = "idea"
	PostTypeMilestone    = "milestone"
	PostTypeQuestion     = "question"
	PostTypeLaunch       = "launch"
	PostTypeFundraising  = "fundraising"
	PostTypeHiring       = "hiring"
	PostTypeEvent        = "event"
	PostTypeIntroduction = "introduction"
)

// ValidPostType reports whether t is one of the wall post tags.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeUpdate, PostTypeIdea, PostTypeMilestone, PostTypeQuestion,
		PostTypeLaunch, PostTypeFundraising, PostTypeHiring, PostTypeEvent,
		PostTypeIntroduction:
		return true
	}
	return false
}

// Post is a wall entry. Author name and role are denormalized so the feed
// renders without extra user reads.
type Post struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	AuthorID   primitive.ObjectID   `bson:"author_id" json:"author_id"`
	AuthorName string               `bson:"author_name" json:"author_name"`
	AuthorRole string               `bson:"author_role" json:"author_role"`
	Content    string               `bson:"content" json:"content"`
	Type       string               `bson:"type" json:"type"`
	Images     []string             `bson:"images,omitempty" json:"images,omitempty"`
	Likes      []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	Reposts    []primitive.ObjectID `bson:"reposts,omitempty" json:"reposts,omitempty"`
	Comments   []Comment            `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at" json:"updated_at"`
}

// Comment is embedded in its post; replies nest one level deep.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Content    string             `bson:"content" json:"content"`
	Replies    []Reply            `bson:"replies,omitempty" json:"replies,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

type Reply struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// LeaderboardEntry is one row of the likes leaderboard.
type LeaderboardEntry struct {
	AuthorID   primitive.ObjectID `bson:"_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Likes      int64              `bson:"likes" json:"likes"`
}
