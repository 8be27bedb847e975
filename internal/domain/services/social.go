package services

import (
	"context"

	"pawtrack/internal/domain/models"
)

// PostService handles the community feed: posts, likes and comments.
type PostService interface {
	CreatePost(ctx context.Context, p models.Principal, req *PostRequest) (*models.Post, error)
	// Feed returns all posts newest-first, annotated with whether the
	// caller has liked each one.
	Feed(ctx context.Context, p models.Principal) ([]models.FeedItem, error)
	UpdatePost(ctx context.Context, p models.Principal, id string, req *PostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, p models.Principal, id string) error

	// Like records a like; liking twice yields a ConflictError.
	Like(ctx context.Context, p models.Principal, postID string) error
	// Unlike removes a like; unliking twice is a no-op.
	Unlike(ctx context.Context, p models.Principal, postID string) error

	AddComment(ctx context.Context, p models.Principal, postID string, req *CommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, p models.Principal, id string) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
}

// PostRequest represents a post create or update request. At least one
// of content or image is required.
type PostRequest struct {
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// CommentRequest represents a comment create request.
type CommentRequest struct {
	Content string `json:"content"`
}
