package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/foundic-app/foundic-backend/internal/services"
	"github.com/foundic-app/foundic-backend/pkg/logger"
	"github.com/foundic-app/foundic-backend/pkg/middleware"
	"github.com/foundic-app/foundic-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests for the wall.
type PostHandler struct {
	Service *services.PostService
	Images  *storage.ImageStore
}

func NewPostHandler(service *services.PostService, images *storage.ImageStore) *PostHandler {
	return &PostHandler{Service: service, Images: images}
}

// CreatePostHandler creates a wall post.
func (h *PostHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Content string   `json:"content"`
		Type    string   `json:"type"`
		Images  []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	authorID, _ := primitive.ObjectIDFromHex(claims.UserID)
	post, err := h.Service.CreatePost(r.Context(), authorID, req.Content, req.Type, req.Images)
	if err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to create post", claims.UserID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// GetFeedHandler returns the wall, newest first. An optional "before" query
// parameter (RFC 3339) pages further back.
func (h *PostHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	before := time.Time{}
	if raw := r.URL.Query().Get("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "Invalid before timestamp", http.StatusBadRequest)
			return
		}
		before = parsed
	}

	posts, err := h.Service.GetFeed(r.Context(), before)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to load feed")
		http.Error(w, "Failed to load feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// GetPostHandler returns one post with its comments.
func (h *PostHandler) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := h.Service.GetPost(r.Context(), postID)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// GetUserPostsHandler lists a user's posts for their profile page.
func (h *PostHandler) GetUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	posts, err := h.Service.GetPostsByAuthor(r.Context(), authorID)
	if err != nil {
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// LikePostHandler records a like on a post.
func (h *PostHandler) LikePostHandler(w http.ResponseWriter, r *http.Request) {
	h.reactionHandler(w, r, h.Service.LikePost, "Liked")
}

// UnlikePostHandler removes a like from a post.
func (h *PostHandler) UnlikePostHandler(w http.ResponseWriter, r *http.Request) {
	h.reactionHandler(w, r, h.Service.UnlikePost, "Unliked")
}

// RepostHandler records a repost.
func (h *PostHandler) RepostHandler(w http.ResponseWriter, r *http.Request) {
	h.reactionHandler(w, r, h.Service.RepostPost, "Reposted")
}

// UndoRepostHandler removes a repost.
func (h *PostHandler) UndoRepostHandler(w http.ResponseWriter, r *http.Request) {
	h.reactionHandler(w, r, h.Service.UndoRepost, "Repost removed")
}

// reactionHandler is the shared shape of like/unlike/repost/undo-repost.
func (h *PostHandler) reactionHandler(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, postID, userID primitive.ObjectID) error, okMessage string) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := op(r.Context(), postID, userID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": okMessage})
}

// CommentHandler appends a comment to a post.
func (h *PostHandler) CommentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	authorID, _ := primitive.ObjectIDFromHex(claims.UserID)
	comment, err := h.Service.CommentOnPost(r.Context(), postID, authorID, req.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}

// ReplyHandler appends a reply to a comment.
func (h *PostHandler) ReplyHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	commentID, err := primitive.ObjectIDFromHex(vars["commentId"])
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	authorID, _ := primitive.ObjectIDFromHex(claims.UserID)
	reply, err := h.Service.ReplyToComment(r.Context(), postID, commentID, authorID, req.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reply)
}

// DeletePostHandler removes a post; author or admin only.
func (h *PostHandler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeletePost(r.Context(), postID, requesterID, claims.Role); err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to delete post %s", claims.UserID, postID.Hex())
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Post deleted"})
}

// LeaderboardHandler returns the top users by likes received.
func (h *PostHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = parsed
		}
	}

	entries, err := h.Service.Leaderboard(r.Context(), limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to compute leaderboard")
		http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// UploadImageHandler stores a post image and returns its URL for inclusion in
// a subsequent create-post request.
func (h *PostHandler) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.ParseMultipartForm(10 << 20) // max ~10MB
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	url := h.Images.Store(r.Context(), "foundic/posts", uuid.New().String(), data)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
