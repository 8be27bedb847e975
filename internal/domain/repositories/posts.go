package repositories

import (
	"context"

	"pawtrack/internal/domain/models"
)

// PostRepository persists posts, comments and likes. Posts and
// comments are owned directly by user_id; the feed itself is public
// to authenticated users.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	// ListFeed returns all posts newest-first with author names.
	// IsLiked is left false; callers overlay it via LikedPostIDs.
	ListFeed(ctx context.Context) ([]models.FeedItem, error)
	// LikedPostIDs returns which of the given posts the user has liked.
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
	Update(ctx context.Context, p *models.Post, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error

	// AddLike inserts a like and bumps likes_count. A duplicate like
	// yields a ConflictError; a missing post yields ErrNotFound.
	AddLike(ctx context.Context, postID, userID string) error
	// RemoveLike deletes the like and decrements likes_count if one
	// existed. Removing an absent like is a no-op.
	RemoveLike(ctx context.Context, postID, userID string) error

	AddComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id, ownerID string) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
}
