package domain

import "time"

// User is the domain entity for an account. Followers, Followings and
// LikedPosts are derived from edge tables and filled in by the repository.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Bio          string
	Link         string
	ProfileImage string
	CoverImage   string

	Followers  []int64
	Followings []int64
	LikedPosts []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
