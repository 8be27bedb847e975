package service

import (
	"context"
	"errors"
	"testing"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/services"
)

type fakePostRepo struct {
	feed  []models.FeedItem
	liked map[string]map[string]bool // userID -> postID -> liked

	likedQueriedFor []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{liked: make(map[string]map[string]bool)}
}

func (f *fakePostRepo) Create(_ context.Context, p *models.Post) error {
	p.ID = "post-1"
	return nil
}

func (f *fakePostRepo) ListFeed(_ context.Context) ([]models.FeedItem, error) {
	return f.feed, nil
}

func (f *fakePostRepo) LikedPostIDs(_ context.Context, userID string, postIDs []string) (map[string]bool, error) {
	f.likedQueriedFor = postIDs
	out := make(map[string]bool)
	for _, id := range postIDs {
		if f.liked[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakePostRepo) Update(_ context.Context, _ *models.Post, _ string) error {
	return domain.ErrNotFound
}

func (f *fakePostRepo) Delete(_ context.Context, _, _ string) error {
	return domain.ErrNotFound
}

func (f *fakePostRepo) AddLike(_ context.Context, postID, userID string) error {
	if f.liked[userID] == nil {
		f.liked[userID] = make(map[string]bool)
	}
	if f.liked[userID][postID] {
		return &domain.ConflictError{Message: "You have already liked this post.", ResourceType: "like"}
	}
	f.liked[userID][postID] = true
	return nil
}

func (f *fakePostRepo) RemoveLike(_ context.Context, postID, userID string) error {
	delete(f.liked[userID], postID)
	return nil
}

func (f *fakePostRepo) AddComment(_ context.Context, c *models.Comment) error {
	c.ID = "comment-1"
	return nil
}

func (f *fakePostRepo) DeleteComment(_ context.Context, _, _ string) error {
	return domain.ErrNotFound
}

func (f *fakePostRepo) ListComments(_ context.Context, _ string) ([]models.Comment, error) {
	return nil, nil
}

func feedItem(id, author string) models.FeedItem {
	return models.FeedItem{
		Post:     models.Post{ID: id, UserID: author},
		Username: author,
	}
}

func TestFeedOverlaysCallerLikes(t *testing.T) {
	repo := newFakePostRepo()
	repo.feed = []models.FeedItem{
		feedItem("post-1", "alice"),
		feedItem("post-2", "bob"),
		feedItem("post-3", "carol"),
	}
	repo.liked["viewer"] = map[string]bool{"post-2": true}
	repo.liked["other"] = map[string]bool{"post-1": true, "post-3": true}

	svc := NewPostService(repo, newTestGate(nil), testLogger())

	viewer := models.Principal{ID: "viewer", Role: models.RoleUser}
	feed, err := svc.Feed(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Feed() unexpected error: %v", err)
	}

	if len(feed) != 3 {
		t.Fatalf("Feed() returned %d items, want 3", len(feed))
	}

	wantLiked := map[string]bool{"post-1": false, "post-2": true, "post-3": false}
	for _, item := range feed {
		if item.IsLiked != wantLiked[item.ID] {
			t.Errorf("Feed() %s liked = %v, want %v", item.ID, item.IsLiked, wantLiked[item.ID])
		}
	}

	if len(repo.likedQueriedFor) != 3 {
		t.Errorf("Feed() queried likes for %d posts, want 3", len(repo.likedQueriedFor))
	}
}

func TestFeedEmptySkipsLikeLookup(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, newTestGate(nil), testLogger())

	viewer := models.Principal{ID: "viewer", Role: models.RoleUser}
	feed, err := svc.Feed(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Feed() unexpected error: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("Feed() returned %d items, want 0", len(feed))
	}
	if repo.likedQueriedFor != nil {
		t.Error("Feed() queried likes for an empty feed")
	}
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *services.PostRequest
		wantErr bool
	}{
		{"content only", &services.PostRequest{Content: "Buddy at the park"}, false},
		{"image only", &services.PostRequest{ImageURL: "https://example.com/buddy.jpg"}, false},
		{"both", &services.PostRequest{Content: "Buddy", ImageURL: "https://example.com/buddy.jpg"}, false},
		{"neither", &services.PostRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPostService(newFakePostRepo(), newTestGate(nil), testLogger())

			alice := models.Principal{ID: "alice", Role: models.RoleUser}
			post, err := svc.CreatePost(context.Background(), alice, tt.req)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("CreatePost() error = %v, want validation failure", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreatePost() unexpected error: %v", err)
			}
			if post.UserID != "alice" {
				t.Errorf("CreatePost() author = %q, want alice", post.UserID)
			}
		})
	}
}

func TestLikeTwiceConflicts(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), newTestGate(nil), testLogger())
	alice := models.Principal{ID: "alice", Role: models.RoleUser}

	if err := svc.Like(context.Background(), alice, "post-1"); err != nil {
		t.Fatalf("Like() unexpected error: %v", err)
	}
	if err := svc.Like(context.Background(), alice, "post-1"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Like() error = %v, want conflict", err)
	}
}

func TestUnlikeIsIdempotent(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), newTestGate(nil), testLogger())
	alice := models.Principal{ID: "alice", Role: models.RoleUser}

	if err := svc.Like(context.Background(), alice, "post-1"); err != nil {
		t.Fatalf("Like() unexpected error: %v", err)
	}
	if err := svc.Unlike(context.Background(), alice, "post-1"); err != nil {
		t.Errorf("Unlike() unexpected error: %v", err)
	}
	if err := svc.Unlike(context.Background(), alice, "post-1"); err != nil {
		t.Errorf("second Unlike() unexpected error: %v", err)
	}
}

func TestUpdatePostClassifiesZeroRows(t *testing.T) {
	// post-1 belongs to bob; the repo's conditional update matches
	// nothing for alice, and the probe turns that into forbidden.
	svc := NewPostService(newFakePostRepo(), newTestGate(map[string]string{"post-1": "bob"}), testLogger())

	alice := models.Principal{ID: "alice", Role: models.RoleUser}
	req := &services.PostRequest{Content: "edited"}

	if _, err := svc.UpdatePost(context.Background(), alice, "post-1", req); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("UpdatePost() of foreign post error = %v, want forbidden", err)
	}
	if _, err := svc.UpdatePost(context.Background(), alice, "post-404", req); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdatePost() of absent post error = %v, want not found", err)
	}
}
