package models

import "time"

// Post is a row in posts, owned directly by user_id.
type Post struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Content       string    `json:"content,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// FeedItem is a post as the feed renders it for one viewer.
type FeedItem struct {
	Post
	Username string `json:"username"`
	IsLiked  bool   `json:"is_liked"`
}

// Comment is a row in comments, owned directly by user_id.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Playdate lifecycle. The only transition is active -> expired,
// applied by the hourly sweep when event_date passes.
const (
	PlaydateActive  = "active"
	PlaydateExpired = "expired"
)

// Playdate is a row in playdates, owned directly by host_id.
type Playdate struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	EventDate   time.Time `json:"event_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
