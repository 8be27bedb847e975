package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type postService struct {
	postRepo repositories.PostRepository
	gate     *authz.Gate
	logger   *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(
	postRepo repositories.PostRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.PostService {
	return &postService{
		postRepo: postRepo,
		gate:     gate,
		logger:   logger,
	}
}

// CreatePost publishes a post. A post needs content or an image.
func (s *postService) CreatePost(ctx context.Context, p models.Principal, req *services.PostRequest) (*models.Post, error) {
	if req.Content == "" && req.ImageURL == "" {
		return nil, fmt.Errorf("%w: a post needs content or an image", domain.ErrValidation)
	}

	post := &models.Post{
		UserID:   p.ID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post published", "id", post.ID, "author", p.ID)

	return post, nil
}

// Feed returns all posts newest-first, with the caller's likes overlaid.
func (s *postService) Feed(ctx context.Context, p models.Principal) ([]models.FeedItem, error) {
	feed, err := s.postRepo.ListFeed(ctx)
	if err != nil {
		return nil, err
	}
	if len(feed) == 0 {
		return feed, nil
	}

	ids := make([]string, 0, len(feed))
	for _, item := range feed {
		ids = append(ids, item.ID)
	}

	liked, err := s.postRepo.LikedPostIDs(ctx, p.ID, ids)
	if err != nil {
		return nil, err
	}
	for i := range feed {
		feed[i].IsLiked = liked[feed[i].ID]
	}

	return feed, nil
}

// UpdatePost rewrites the caller's own post.
func (s *postService) UpdatePost(ctx context.Context, p models.Principal, id string, req *services.PostRequest) (*models.Post, error) {
	if req.Content == "" && req.ImageURL == "" {
		return nil, fmt.Errorf("%w: a post needs content or an image", domain.ErrValidation)
	}

	post := &models.Post{
		ID:       id,
		UserID:   p.ID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := s.postRepo.Update(ctx, post, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourcePost, id)
		}
		return nil, err
	}

	return post, nil
}

// DeletePost removes the caller's own post.
func (s *postService) DeletePost(ctx context.Context, p models.Principal, id string) error {
	if err := s.postRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourcePost, id)
		}
		return err
	}

	s.logger.Info("post deleted", "id", id, "author", p.ID)

	return nil
}

// Like records a like on any post. Liking twice conflicts.
func (s *postService) Like(ctx context.Context, p models.Principal, postID string) error {
	return s.postRepo.AddLike(ctx, postID, p.ID)
}

// Unlike removes the caller's like. Unliking twice is a no-op.
func (s *postService) Unlike(ctx context.Context, p models.Principal, postID string) error {
	return s.postRepo.RemoveLike(ctx, postID, p.ID)
}

// AddComment comments on any post.
func (s *postService) AddComment(ctx context.Context, p models.Principal, postID string, req *services.CommentRequest) (*models.Comment, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: comment content is required", domain.ErrValidation)
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  p.ID,
		Content: req.Content,
	}

	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes the caller's own comment.
func (s *postService) DeleteComment(ctx context.Context, p models.Principal, id string) error {
	if err := s.postRepo.DeleteComment(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceComment, id)
		}
		return err
	}
	return nil
}

// ListComments returns a post's comments, oldest first.
func (s *postService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.postRepo.ListComments(ctx, postID)
}
