package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
)

// PostgresPostRepository implements the PostRepository interface.
// Like and comment counters live on the post row and are maintained
// inside the same transaction as the child insert.
type PostgresPostRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPostRepository creates a new post repository
func NewPostRepository(config *RepositoryConfig) repositories.PostRepository {
	return &PostgresPostRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresPostRepository) Create(ctx context.Context, p *models.Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, content, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, likes_count, comments_count, created_at
	`, r.tables.Posts)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.Content,
		p.ImageURL,
	).Scan(&p.ID, &p.LikesCount, &p.CommentsCount, &p.CreatedAt)

	if err != nil {
		return storeErr("create post", err)
	}

	return nil
}

func (r *PostgresPostRepository) ListFeed(ctx context.Context) ([]models.FeedItem, error) {
	query := fmt.Sprintf(`
		SELECT po.id, po.user_id, po.content, po.image_url, po.likes_count, po.comments_count, po.created_at, u.name
		FROM %s po
		JOIN %s u ON po.user_id = u.id
		ORDER BY po.created_at DESC
	`, r.tables.Posts, r.tables.Users)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list feed", err)
	}
	defer rows.Close()

	feed := []models.FeedItem{}
	for rows.Next() {
		var f models.FeedItem
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.Content,
			&f.ImageURL,
			&f.LikesCount,
			&f.CommentsCount,
			&f.CreatedAt,
			&f.Username,
		); err != nil {
			return nil, fmt.Errorf("scan feed item: %w", err)
		}
		feed = append(feed, f)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate feed", err)
	}

	return feed, nil
}

func (r *PostgresPostRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	query := fmt.Sprintf(`
		SELECT post_id FROM %s WHERE user_id = $1 AND post_id = ANY($2)
	`, r.tables.Likes)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, userID, postIDs)
	if err != nil {
		return nil, storeErr("list liked posts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan liked post id: %w", err)
		}
		liked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate liked posts", err)
	}

	return liked, nil
}

func (r *PostgresPostRepository) Update(ctx context.Context, p *models.Post, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, image_url = $2
		WHERE id = $3 AND user_id = $4
		RETURNING likes_count, comments_count, created_at
	`, r.tables.Posts)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.pool.QueryRow(ctx, query,
		p.Content,
		p.ImageURL,
		p.ID,
		ownerID,
	).Scan(&p.LikesCount, &p.CommentsCount, &p.CreatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("post %s: %w", p.ID, domain.ErrNotFound)
		}
		return storeErr("update post", err)
	}

	return nil
}

func (r *PostgresPostRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2
	`, r.tables.Posts)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return storeErr("delete post", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin like", err)
	}
	defer tx.Rollback(ctx)

	insert := fmt.Sprintf(`
		INSERT INTO %s (post_id, user_id) VALUES ($1, $2)
	`, r.tables.Likes)

	if _, err := tx.Exec(ctx, insert, postID, userID); err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "You have already liked this post.",
				ResourceType: "like",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
		}
		return storeErr("insert like", err)
	}

	bump := fmt.Sprintf(`
		UPDATE %s SET likes_count = likes_count + 1 WHERE id = $1
	`, r.tables.Posts)

	if _, err := tx.Exec(ctx, bump, postID); err != nil {
		return storeErr("bump likes count", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit like", err)
	}

	return nil
}

func (r *PostgresPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin unlike", err)
	}
	defer tx.Rollback(ctx)

	remove := fmt.Sprintf(`
		DELETE FROM %s WHERE post_id = $1 AND user_id = $2
	`, r.tables.Likes)

	result, err := tx.Exec(ctx, remove, postID, userID)
	if err != nil {
		return storeErr("delete like", err)
	}
	if result.RowsAffected() == 0 {
		// Nothing to remove; unliking twice is not an error.
		return nil
	}

	drop := fmt.Sprintf(`
		UPDATE %s SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1
	`, r.tables.Posts)

	if _, err := tx.Exec(ctx, drop, postID); err != nil {
		return storeErr("drop likes count", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit unlike", err)
	}

	return nil
}

func (r *PostgresPostRepository) AddComment(ctx context.Context, c *models.Comment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin comment", err)
	}
	defer tx.Rollback(ctx)

	insert := fmt.Sprintf(`
		INSERT INTO %s (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Comments)

	err = tx.QueryRow(ctx, insert, c.PostID, c.UserID, c.Content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("post %s: %w", c.PostID, domain.ErrNotFound)
		}
		return storeErr("insert comment", err)
	}

	bump := fmt.Sprintf(`
		UPDATE %s SET comments_count = comments_count + 1 WHERE id = $1
	`, r.tables.Posts)

	if _, err := tx.Exec(ctx, bump, c.PostID); err != nil {
		return storeErr("bump comments count", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit comment", err)
	}

	return nil
}

func (r *PostgresPostRepository) DeleteComment(ctx context.Context, id, ownerID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin delete comment", err)
	}
	defer tx.Rollback(ctx)

	remove := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2 RETURNING post_id
	`, r.tables.Comments)

	var postID string
	if err := tx.QueryRow(ctx, remove, id, ownerID).Scan(&postID); err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return storeErr("delete comment", err)
	}

	drop := fmt.Sprintf(`
		UPDATE %s SET comments_count = GREATEST(comments_count - 1, 0) WHERE id = $1
	`, r.tables.Posts)

	if _, err := tx.Exec(ctx, drop, postID); err != nil {
		return storeErr("drop comments count", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit delete comment", err)
	}

	return nil
}

func (r *PostgresPostRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.post_id, c.user_id, c.content, u.name, c.created_at
		FROM %s c
		JOIN %s u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, r.tables.Comments, r.tables.Users)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, storeErr("list comments", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.UserID,
			&c.Content,
			&c.Author,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate comments", err)
	}

	return comments, nil
}
