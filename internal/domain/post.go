package domain

import "time"

// Author is the subset of user fields embedded in feeds and notifications.
type Author struct {
	ID           int64
	Username     string
	FullName     string
	ProfileImage string
}

type Post struct {
	ID     int64
	UserID int64
	Text   string
	Image  string

	Author   Author
	Likes    []int64
	Comments []Comment

	CreatedAt time.Time
}

// Comment lives inside a post; append-only, ordered by insertion.
type Comment struct {
	ID     int64
	PostID int64
	UserID int64
	Text   string

	Author Author

	CreatedAt time.Time
}
