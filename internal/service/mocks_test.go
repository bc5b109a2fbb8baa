package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(dom.User), args.Error(1)
}

func (m *mockUserRepo) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Follow(ctx context.Context, followerID, followedID int64) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *mockUserRepo) Unfollow(ctx context.Context, followerID, followedID int64) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *mockUserRepo) Suggested(ctx context.Context, userID int64, limit int) ([]dom.User, error) {
	args := m.Called(ctx, userID, limit)
	if v := args.Get(0); v != nil {
		return v.([]dom.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(ctx context.Context, p dom.Post) (dom.Post, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(dom.Post), args.Error(1)
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (dom.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Post), args.Error(1)
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostRepo) ListAll(ctx context.Context) ([]dom.Post, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]dom.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) ListByUserID(ctx context.Context, userID int64) ([]dom.Post, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]dom.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) ListByFollowed(ctx context.Context, followerID int64) ([]dom.Post, error) {
	args := m.Called(ctx, followerID)
	if v := args.Get(0); v != nil {
		return v.([]dom.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) ListLikedBy(ctx context.Context, userID int64) ([]dom.Post, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]dom.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) AddComment(ctx context.Context, postID, userID int64, text string) (dom.Comment, error) {
	args := m.Called(ctx, postID, userID, text)
	return args.Get(0).(dom.Comment), args.Error(1)
}

func (m *mockPostRepo) HasLiked(ctx context.Context, postID, userID int64) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) Like(ctx context.Context, postID, userID int64) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) Unlike(ctx context.Context, postID, userID int64) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) LikerIDs(ctx context.Context, postID int64) ([]int64, error) {
	args := m.Called(ctx, postID)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, fromID, toID int64, kind dom.NotificationKind) error {
	return m.Called(ctx, fromID, toID, kind).Error(0)
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, toID int64) ([]dom.Notification, error) {
	args := m.Called(ctx, toID)
	if v := args.Get(0); v != nil {
		return v.([]dom.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, toID int64) error {
	return m.Called(ctx, toID).Error(0)
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id int64) (dom.Notification, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dom.Notification), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) DeleteAll(ctx context.Context, toID int64) error {
	return m.Called(ctx, toID).Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	args := m.Called(ctx, dataURL)
	return args.String(0), args.Error(1)
}

func (m *mockUploader) Remove(ctx context.Context, objectURL string) error {
	return m.Called(ctx, objectURL).Error(0)
}
