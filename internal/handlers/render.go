package handlers

import (
	dom "github.com/anousone23/twitter-clone/internal/domain"
	"github.com/anousone23/twitter-clone/internal/dto"
)

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Email:        u.Email,
		Bio:          u.Bio,
		Link:         u.Link,
		ProfileImage: u.ProfileImage,
		CoverImage:   u.CoverImage,
		Followers:    emptyIfNil(u.Followers),
		Followings:   emptyIfNil(u.Followings),
		LikedPosts:   emptyIfNil(u.LikedPosts),
		CreatedAt:    u.CreatedAt,
	}
}

func usersToResponses(list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i := range list {
		out[i] = userToResponse(list[i])
	}
	return out
}

func authorToResponse(a dom.Author) dto.AuthorResponse {
	return dto.AuthorResponse{
		ID:           a.ID,
		Username:     a.Username,
		FullName:     a.FullName,
		ProfileImage: a.ProfileImage,
	}
}

func postToResponse(p dom.Post) dto.PostResponse {
	comments := make([]dto.CommentResponse, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = dto.CommentResponse{
			ID:        c.ID,
			User:      authorToResponse(c.Author),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}
	return dto.PostResponse{
		ID:        p.ID,
		User:      authorToResponse(p.Author),
		Text:      p.Text,
		Image:     p.Image,
		Likes:     emptyIfNil(p.Likes),
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func postsToResponses(list []dom.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, len(list))
	for i := range list {
		out[i] = postToResponse(list[i])
	}
	return out
}

func notificationToResponse(n dom.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		From:      authorToResponse(n.From),
		To:        n.ToID,
		Kind:      string(n.Kind),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func notificationsToResponses(list []dom.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, len(list))
	for i := range list {
		out[i] = notificationToResponse(list[i])
	}
	return out
}

func emptyIfNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
