package domain

import "time"

// Tweet is a short text post owned by exactly one user. Deleting the owner
// cascades to their tweets; deleting a tweet cascades to its comments.
type Tweet struct {
	ID          int64
	Text        string
	LikeCounter int64
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Author and Comments are populated by eager-loading reads only.
	Author   *User
	Comments []Comment
}

// Comment belongs to a tweet. There is no recorded comment author.
type Comment struct {
	ID          int64
	Text        string
	LikeCounter int64
	TweetID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
