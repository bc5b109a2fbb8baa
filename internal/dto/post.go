package dto

import "time"

// CreatePostRequest is the JSON body for POST /posts. Image is a base64
// data URL; at least one of text/image must be present.
type CreatePostRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// CommentRequest is the JSON body for POST /posts/comment/{id}.
type CommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID        int64          `json:"id"`
	User      AuthorResponse `json:"user"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"createdAt"`
}

type PostResponse struct {
	ID        int64             `json:"id"`
	User      AuthorResponse    `json:"user"`
	Text      string            `json:"text"`
	Image     string            `json:"image"`
	Likes     []int64           `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
}

type ListPostsResponse struct {
	Items []PostResponse `json:"items"`
}
