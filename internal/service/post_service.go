package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/anousone23/twitter-clone/internal/cache"
	dom "github.com/anousone23/twitter-clone/internal/domain"
	"github.com/anousone23/twitter-clone/internal/media"
	"github.com/anousone23/twitter-clone/internal/repo"
)

// PostService owns posts, comments and the like toggle.
type PostService struct {
	posts         repo.PostRepo
	users         repo.UserRepo
	notifications repo.NotificationRepo
	uploader      media.Uploader
	cache         *cache.FeedCache
	sf            singleflight.Group
}

// NewPostService creates a PostService. If c is nil, feed caching is disabled.
func NewPostService(p repo.PostRepo, u repo.UserRepo, n repo.NotificationRepo, up media.Uploader, c *cache.FeedCache) *PostService {
	return &PostService{posts: p, users: u, notifications: n, uploader: up, cache: c}
}

// Create stores a new post. At least one of text or image is required; an
// image arrives as a base64 data URL and is moved to the asset host.
func (s *PostService) Create(ctx context.Context, userID int64, text, image string) (dom.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == "" {
		return dom.Post{}, ErrEmptyPost
	}
	if image != "" {
		url, err := s.uploader.UploadDataURL(ctx, image)
		if err != nil {
			return dom.Post{}, err
		}
		image = url
	}
	p, err := s.posts.Create(ctx, dom.Post{UserID: userID, Text: text, Image: image})
	if err != nil {
		return dom.Post{}, err
	}
	s.invalidateFeeds(ctx)
	return p, nil
}

// Delete removes a post. Only the owner may delete it; the stored image is
// removed from the asset host best effort.
func (s *PostService) Delete(ctx context.Context, actorID, postID int64) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if p.UserID != actorID {
		return ErrForbidden
	}
	if p.Image != "" {
		if err := s.uploader.Remove(ctx, p.Image); err != nil {
			log.Printf("remove post image: %v", err)
		}
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.invalidateFeeds(ctx)
	return nil
}

// Comment appends a comment, notifies the post owner and returns the post
// re-fetched so the response carries the fresh comment list.
func (s *PostService) Comment(ctx context.Context, actorID, postID int64, text string) (dom.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dom.Post{}, ErrEmptyComment
	}
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Post{}, ErrNotFound
		}
		return dom.Post{}, err
	}
	if _, err := s.posts.AddComment(ctx, postID, actorID, text); err != nil {
		return dom.Post{}, err
	}
	s.notify(ctx, actorID, p.UserID, dom.NotificationComment)
	out, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return dom.Post{}, err
	}
	s.invalidateFeeds(ctx)
	return out, nil
}

// LikeUnlike toggles the actor's like on the post and returns the liker list
// re-read after the mutation, plus whether the post ended up liked. Liking
// notifies the post owner, even when the actor likes their own post; there
// is no self-like restriction, unlike the follow toggle.
func (s *PostService) LikeUnlike(ctx context.Context, actorID, postID int64) ([]int64, bool, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	liked, err := s.posts.HasLiked(ctx, postID, actorID)
	if err != nil {
		return nil, false, err
	}
	if liked {
		err = s.posts.Unlike(ctx, postID, actorID)
	} else {
		err = s.posts.Like(ctx, postID, actorID)
	}
	if err != nil {
		return nil, false, err
	}
	if !liked {
		s.notify(ctx, actorID, p.UserID, dom.NotificationLike)
	}
	likes, err := s.posts.LikerIDs(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	s.invalidateFeeds(ctx)
	return likes, !liked, nil
}

// All returns the global feed, newest first, through the cache.
func (s *PostService) All(ctx context.Context) ([]dom.Post, error) {
	if s.cache == nil {
		return s.posts.ListAll(ctx)
	}
	v, err, _ := s.sf.Do("all", func() (any, error) {
		if posts, err := s.cache.GetAll(ctx); err == nil && posts != nil {
			return posts, nil
		}
		posts, err := s.posts.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetAll(ctx, posts)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Post), nil
}

// Following returns posts authored by users the caller follows.
func (s *PostService) Following(ctx context.Context, userID int64) ([]dom.Post, error) {
	if s.cache == nil {
		return s.posts.ListByFollowed(ctx, userID)
	}
	v, err, _ := s.sf.Do("following:"+strconv.FormatInt(userID, 10), func() (any, error) {
		if posts, err := s.cache.GetFollowing(ctx, userID); err == nil && posts != nil {
			return posts, nil
		}
		posts, err := s.posts.ListByFollowed(ctx, userID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetFollowing(ctx, userID, posts)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Post), nil
}

// ByUsername returns the named user's posts.
func (s *PostService) ByUsername(ctx context.Context, username string) ([]dom.Post, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.cache == nil {
		return s.posts.ListByUserID(ctx, u.ID)
	}
	v, err, _ := s.sf.Do("user:"+username, func() (any, error) {
		if posts, err := s.cache.GetUser(ctx, username); err == nil && posts != nil {
			return posts, nil
		}
		posts, err := s.posts.ListByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetUser(ctx, username, posts)
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Post), nil
}

// LikedBy returns the posts a user has liked.
func (s *PostService) LikedBy(ctx context.Context, userID int64) ([]dom.Post, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.posts.ListLikedBy(ctx, userID)
}

func (s *PostService) invalidateFeeds(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Printf("invalidate feed cache: %v", err)
		}
	}
}

func (s *PostService) notify(ctx context.Context, fromID, toID int64, kind dom.NotificationKind) {
	if err := s.notifications.Create(ctx, fromID, toID, kind); err != nil {
		log.Printf("emit %s notification from %d to %d: %v", kind, fromID, toID, err)
	}
}
