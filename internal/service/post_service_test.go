package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

func newPostService() (*PostService, *mockPostRepo, *mockUserRepo, *mockNotificationRepo, *mockUploader) {
	posts := new(mockPostRepo)
	users := new(mockUserRepo)
	notifications := new(mockNotificationRepo)
	uploader := new(mockUploader)
	// nil cache: feed caching is exercised against a live Redis, not here.
	return NewPostService(posts, users, notifications, uploader, nil), posts, users, notifications, uploader
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("text only", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("Create", ctx, dom.Post{UserID: 1, Text: "hello"}).
			Return(dom.Post{ID: 10, UserID: 1, Text: "hello"}, nil)

		p, err := svc.Create(ctx, 1, "hello", "")
		require.NoError(t, err)
		assert.Equal(t, int64(10), p.ID)
	})

	t.Run("image is uploaded first", func(t *testing.T) {
		svc, posts, _, _, uploader := newPostService()
		uploader.On("UploadDataURL", ctx, "data:image/png;base64,aGk=").
			Return("http://assets/p.png", nil)
		posts.On("Create", ctx, dom.Post{UserID: 1, Image: "http://assets/p.png"}).
			Return(dom.Post{ID: 11, UserID: 1, Image: "http://assets/p.png"}, nil)

		p, err := svc.Create(ctx, 1, "", "data:image/png;base64,aGk=")
		require.NoError(t, err)
		assert.Equal(t, "http://assets/p.png", p.Image)
	})

	t.Run("empty post is rejected", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()

		_, err := svc.Create(ctx, 1, "   ", "")
		assert.ErrorIs(t, err, ErrEmptyPost)
		posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes, image removed", func(t *testing.T) {
		svc, posts, _, _, uploader := newPostService()
		posts.On("GetByID", ctx, int64(10)).
			Return(dom.Post{ID: 10, UserID: 1, Image: "http://assets/p.png"}, nil)
		uploader.On("Remove", ctx, "http://assets/p.png").Return(nil)
		posts.On("Delete", ctx, int64(10)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 1, 10))
		uploader.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("GetByID", ctx, int64(10)).Return(dom.Post{ID: 10, UserID: 1}, nil)

		err := svc.Delete(ctx, 2, 10)
		assert.ErrorIs(t, err, ErrForbidden)
		posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("GetByID", ctx, int64(404)).Return(dom.Post{}, pgx.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, 1, 404), ErrNotFound)
	})
}

func TestPostService_Comment(t *testing.T) {
	ctx := context.Background()

	t.Run("appends and notifies the owner", func(t *testing.T) {
		svc, posts, _, notifications, _ := newPostService()
		posts.On("GetByID", ctx, int64(10)).
			Return(dom.Post{ID: 10, UserID: 1}, nil).Once()
		posts.On("AddComment", ctx, int64(10), int64(2), "nice").
			Return(dom.Comment{ID: 5, PostID: 10, UserID: 2, Text: "nice"}, nil)
		notifications.On("Create", ctx, int64(2), int64(1), dom.NotificationComment).Return(nil)
		// Re-fetched so the response carries the fresh comment list.
		posts.On("GetByID", ctx, int64(10)).
			Return(dom.Post{ID: 10, UserID: 1, Comments: []dom.Comment{{ID: 5, Text: "nice"}}}, nil).Once()

		p, err := svc.Comment(ctx, 2, 10, "nice")
		require.NoError(t, err)
		require.Len(t, p.Comments, 1)
		assert.Equal(t, "nice", p.Comments[0].Text)
		notifications.AssertExpectations(t)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()

		_, err := svc.Comment(ctx, 2, 10, "  ")
		assert.ErrorIs(t, err, ErrEmptyComment)
		posts.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("GetByID", ctx, int64(404)).Return(dom.Post{}, pgx.ErrNoRows)

		_, err := svc.Comment(ctx, 2, 404, "nice")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostService_LikeUnlike(t *testing.T) {
	ctx := context.Background()

	t.Run("like notifies and returns the fresh liker list", func(t *testing.T) {
		svc, posts, _, notifications, _ := newPostService()
		posts.On("GetByID", ctx, int64(10)).Return(dom.Post{ID: 10, UserID: 1}, nil)
		posts.On("HasLiked", ctx, int64(10), int64(2)).Return(false, nil)
		posts.On("Like", ctx, int64(10), int64(2)).Return(nil)
		notifications.On("Create", ctx, int64(2), int64(1), dom.NotificationLike).Return(nil)
		posts.On("LikerIDs", ctx, int64(10)).Return([]int64{2, 3}, nil)

		likes, liked, err := svc.LikeUnlike(ctx, 2, 10)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, []int64{2, 3}, likes)
		notifications.AssertExpectations(t)
	})

	t.Run("second toggle unlikes silently", func(t *testing.T) {
		svc, posts, _, notifications, _ := newPostService()
		posts.On("GetByID", ctx, int64(10)).Return(dom.Post{ID: 10, UserID: 1}, nil)
		posts.On("HasLiked", ctx, int64(10), int64(2)).Return(true, nil)
		posts.On("Unlike", ctx, int64(10), int64(2)).Return(nil)
		posts.On("LikerIDs", ctx, int64(10)).Return([]int64{3}, nil)

		likes, liked, err := svc.LikeUnlike(ctx, 2, 10)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, []int64{3}, likes)
		notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("self like is allowed and still notifies", func(t *testing.T) {
		svc, posts, _, notifications, _ := newPostService()
		posts.On("GetByID", ctx, int64(10)).Return(dom.Post{ID: 10, UserID: 1}, nil)
		posts.On("HasLiked", ctx, int64(10), int64(1)).Return(false, nil)
		posts.On("Like", ctx, int64(10), int64(1)).Return(nil)
		notifications.On("Create", ctx, int64(1), int64(1), dom.NotificationLike).Return(nil)
		posts.On("LikerIDs", ctx, int64(10)).Return([]int64{1}, nil)

		_, liked, err := svc.LikeUnlike(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, liked)
		notifications.AssertExpectations(t)
	})

	t.Run("missing post", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("GetByID", ctx, int64(404)).Return(dom.Post{}, pgx.ErrNoRows)

		_, _, err := svc.LikeUnlike(ctx, 2, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostService_Feeds(t *testing.T) {
	ctx := context.Background()

	t.Run("all without cache hits the repo", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("ListAll", ctx).Return([]dom.Post{{ID: 2}, {ID: 1}}, nil)

		out, err := svc.All(ctx)
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("following without cache hits the repo", func(t *testing.T) {
		svc, posts, _, _, _ := newPostService()
		posts.On("ListByFollowed", ctx, int64(1)).Return([]dom.Post{{ID: 3}}, nil)

		out, err := svc.Following(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("by username resolves the user first", func(t *testing.T) {
		svc, posts, users, _, _ := newPostService()
		users.On("GetByUsername", ctx, "alice").Return(dom.User{ID: 1, Username: "alice"}, nil)
		posts.On("ListByUserID", ctx, int64(1)).Return([]dom.Post{{ID: 4, UserID: 1}}, nil)

		out, err := svc.ByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("by unknown username", func(t *testing.T) {
		svc, _, users, _, _ := newPostService()
		users.On("GetByUsername", ctx, "nobody").Return(dom.User{}, pgx.ErrNoRows)

		_, err := svc.ByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("liked by unknown user", func(t *testing.T) {
		svc, _, users, _, _ := newPostService()
		users.On("GetByID", ctx, int64(404)).Return(dom.User{}, pgx.ErrNoRows)

		_, err := svc.LikedBy(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
