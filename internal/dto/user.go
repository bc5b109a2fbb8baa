package dto

import "time"

// UserResponse is a user as returned by the API: everything but the secret.
type UserResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullname"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	Link         string    `json:"link"`
	ProfileImage string    `json:"profileImage"`
	CoverImage   string    `json:"coverImage"`
	Followers    []int64   `json:"followers"`
	Followings   []int64   `json:"followings"`
	LikedPosts   []int64   `json:"likedPosts"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthorResponse is the short user shape embedded in posts, comments and
// notifications.
type AuthorResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullname"`
	ProfileImage string `json:"profileImage"`
}

// UpdateProfileRequest is the JSON body for POST /users/update. Every field
// is optional; empty means "keep the current value". Image fields take
// base64 data URLs.
type UpdateProfileRequest struct {
	FullName        string `json:"fullname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImage    string `json:"profileImage"`
	CoverImage      string `json:"coverImage"`
}
