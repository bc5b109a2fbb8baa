package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

func newUserService() (*UserService, *mockUserRepo, *mockNotificationRepo, *mockUploader) {
	users := new(mockUserRepo)
	notifications := new(mockNotificationRepo)
	uploader := new(mockUploader)
	return NewUserService(users, notifications, uploader), users, notifications, uploader
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").Return(dom.User{}, pgx.ErrNoRows)
		users.On("GetByEmail", ctx, "alice@example.com").Return(dom.User{}, pgx.ErrNoRows)

		var created dom.User
		users.On("Create", ctx, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(dom.User)
			}).
			Return(dom.User{ID: 1, Username: "alice"}, nil)

		u, err := svc.SignUp(ctx, "Alice A", "alice", "alice@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)

		assert.NotEqual(t, "hunter22", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22")))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		svc, _, _, _ := newUserService()
		_, err := svc.SignUp(ctx, "Alice A", "alice", "not-an-email", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _, _, _ := newUserService()
		_, err := svc.SignUp(ctx, "Alice A", "alice", "alice@example.com", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").Return(dom.User{ID: 9, Username: "alice"}, nil)

		_, err := svc.SignUp(ctx, "Alice A", "alice", "alice@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrUsernameTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").Return(dom.User{}, pgx.ErrNoRows)
		users.On("GetByEmail", ctx, "alice@example.com").Return(dom.User{ID: 9}, nil)

		_, err := svc.SignUp(ctx, "Alice A", "alice", "alice@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("maps unique violation from a concurrent duplicate", func(t *testing.T) {
		// Both pre-checks pass but the insert loses the race; the constraint
		// violation must surface as the same duplicate error.
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").Return(dom.User{}, pgx.ErrNoRows)
		users.On("GetByEmail", ctx, "alice@example.com").Return(dom.User{}, pgx.ErrNoRows)
		users.On("Create", ctx, mock.AnythingOfType("domain.User")).
			Return(dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		_, err := svc.SignUp(ctx, "Alice A", "alice", "alice@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestUserService_SignIn(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").
			Return(dom.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil)

		u, err := svc.SignIn(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").
			Return(dom.User{ID: 1, PasswordHash: string(hash)}, nil)

		_, err := svc.SignIn(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "nobody").Return(dom.User{}, pgx.ErrNoRows)

		_, err := svc.SignIn(ctx, "nobody", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_FollowUnfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("follow notifies the target", func(t *testing.T) {
		svc, users, notifications, _ := newUserService()
		users.On("GetByID", ctx, int64(2)).Return(dom.User{ID: 2}, nil)
		users.On("IsFollowing", ctx, int64(1), int64(2)).Return(false, nil)
		users.On("Follow", ctx, int64(1), int64(2)).Return(nil)
		notifications.On("Create", ctx, int64(1), int64(2), dom.NotificationFollow).Return(nil)

		following, err := svc.FollowUnfollow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, following)
		notifications.AssertExpectations(t)
	})

	t.Run("unfollow is silent", func(t *testing.T) {
		svc, users, notifications, _ := newUserService()
		users.On("GetByID", ctx, int64(2)).Return(dom.User{ID: 2}, nil)
		users.On("IsFollowing", ctx, int64(1), int64(2)).Return(true, nil)
		users.On("Unfollow", ctx, int64(1), int64(2)).Return(nil)

		following, err := svc.FollowUnfollow(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, following)
		notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		svc, users, _, _ := newUserService()

		_, err := svc.FollowUnfollow(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrSelfFollow)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing target", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByID", ctx, int64(404)).Return(dom.User{}, pgx.ErrNoRows)

		_, err := svc.FollowUnfollow(ctx, 1, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("lost notification does not fail the follow", func(t *testing.T) {
		svc, users, notifications, _ := newUserService()
		users.On("GetByID", ctx, int64(2)).Return(dom.User{ID: 2}, nil)
		users.On("IsFollowing", ctx, int64(1), int64(2)).Return(false, nil)
		users.On("Follow", ctx, int64(1), int64(2)).Return(nil)
		notifications.On("Create", ctx, int64(1), int64(2), dom.NotificationFollow).
			Return(assert.AnError)

		following, err := svc.FollowUnfollow(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, following)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "alice").Return(dom.User{ID: 1, Username: "alice"}, nil)

		u, err := svc.GetProfile(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("missing", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByUsername", ctx, "nobody").Return(dom.User{}, pgx.ErrNoRows)

		_, err := svc.GetProfile(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	current := dom.User{
		ID:           1,
		Username:     "alice",
		FullName:     "Alice A",
		Email:        "alice@example.com",
		Bio:          "old bio",
		PasswordHash: string(hash),
	}

	t.Run("empty fields keep the old values", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByID", ctx, int64(1)).Return(current, nil)

		var saved dom.User
		users.On("Update", ctx, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(dom.User)
			}).
			Return(current, nil)

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{Bio: "new bio"})
		require.NoError(t, err)
		assert.Equal(t, "new bio", saved.Bio)
		assert.Equal(t, "alice", saved.Username)
		assert.Equal(t, "alice@example.com", saved.Email)
	})

	t.Run("password change requires both fields", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByID", ctx, int64(1)).Return(current, nil)

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{NewPassword: "newpassword"})
		assert.ErrorIs(t, err, ErrPasswordPair)

		_, err = svc.UpdateProfile(ctx, 1, UpdateProfileInput{CurrentPassword: "hunter22"})
		assert.ErrorIs(t, err, ErrPasswordPair)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByID", ctx, int64(1)).Return(current, nil)

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{
			CurrentPassword: "wrong",
			NewPassword:     "newpassword",
		})
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("new profile image replaces the old object", func(t *testing.T) {
		svc, users, _, uploader := newUserService()
		withImage := current
		withImage.ProfileImage = "http://assets/old.png"
		users.On("GetByID", ctx, int64(1)).Return(withImage, nil)
		uploader.On("Remove", ctx, "http://assets/old.png").Return(nil)
		uploader.On("UploadDataURL", ctx, "data:image/png;base64,aGk=").
			Return("http://assets/new.png", nil)

		var saved dom.User
		users.On("Update", ctx, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(dom.User)
			}).
			Return(withImage, nil)

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{ProfileImage: "data:image/png;base64,aGk="})
		require.NoError(t, err)
		assert.Equal(t, "http://assets/new.png", saved.ProfileImage)
		uploader.AssertExpectations(t)
	})

	t.Run("duplicate email maps to taken error", func(t *testing.T) {
		svc, users, _, _ := newUserService()
		users.On("GetByID", ctx, int64(1)).Return(current, nil)
		users.On("Update", ctx, mock.AnythingOfType("domain.User")).
			Return(dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileInput{Email: "taken@example.com"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_Suggested(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserService()
	users.On("Suggested", ctx, int64(1), 4).Return([]dom.User{{ID: 2}, {ID: 3}}, nil)

	out, err := svc.Suggested(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	users.AssertExpectations(t)
}
