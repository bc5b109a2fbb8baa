package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	dom "github.com/anousone23/twitter-clone/internal/domain"
	"github.com/anousone23/twitter-clone/internal/media"
	"github.com/anousone23/twitter-clone/internal/repo"
	"github.com/anousone23/twitter-clone/internal/utils"
)

const minPasswordLength = 6

const suggestedLimit = 4

var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// UserService owns accounts, profiles and the follow graph.
type UserService struct {
	repo          repo.UserRepo
	notifications repo.NotificationRepo
	uploader      media.Uploader
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, n repo.NotificationRepo, up media.Uploader) *UserService {
	return &UserService{repo: r, notifications: n, uploader: up}
}

// SignUp creates an account with a bcrypt-hashed password. The existence
// pre-checks are advisory; under a concurrent duplicate signup the table's
// unique constraints decide the winner and we map the violation to the same
// error the pre-check would have produced.
func (s *UserService) SignUp(ctx context.Context, fullname, username, email, password string) (dom.User, error) {
	fullname = strings.TrimSpace(fullname)
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if !emailPattern.MatchString(email) {
		return dom.User{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return dom.User{}, ErrPasswordTooShort
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return dom.User{}, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dom.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		FullName:     fullname,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return dom.User{}, mapUniqueViolation(err)
	}
	return u, nil
}

// SignIn checks the credentials and returns the account. When the username
// is unknown we still run the bcrypt compare against an empty hash so both
// failure paths cost the same.
func (s *UserService) SignIn(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword([]byte{}, []byte(password))
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetProfile returns the user with the given username.
func (s *UserService) GetProfile(ctx context.Context, username string) (dom.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// Suggested returns up to four random users the caller does not follow yet.
func (s *UserService) Suggested(ctx context.Context, userID int64) ([]dom.User, error) {
	return s.repo.Suggested(ctx, userID, suggestedLimit)
}

// FollowUnfollow toggles the follow edge from actor to target and reports
// whether the actor follows the target afterwards. Following emits a
// notification to the target; unfollowing does not.
func (s *UserService) FollowUnfollow(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}
	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	following, err := s.repo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if following {
		if err := s.repo.Unfollow(ctx, actorID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.Follow(ctx, actorID, targetID); err != nil {
		return false, err
	}
	s.notify(ctx, actorID, targetID, dom.NotificationFollow)
	return true, nil
}

// UpdateProfileInput carries the optional profile changes. Empty strings
// leave the current value in place; image fields take base64 data URLs.
type UpdateProfileInput struct {
	FullName        string
	Username        string
	Email           string
	Bio             string
	Link            string
	CurrentPassword string
	NewPassword     string
	ProfileImage    string
	CoverImage      string
}

// UpdateProfile applies the changes to the caller's account. Password change
// requires both the current and the new password; new images replace the old
// objects on the asset host.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}

	if (in.CurrentPassword == "") != (in.NewPassword == "") {
		return dom.User{}, ErrPasswordPair
	}
	if in.CurrentPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return dom.User{}, ErrWrongPassword
		}
		if len(in.NewPassword) < minPasswordLength {
			return dom.User{}, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return dom.User{}, err
		}
		u.PasswordHash = string(hash)
	}

	if in.ProfileImage != "" {
		url, err := s.replaceImage(ctx, u.ProfileImage, in.ProfileImage)
		if err != nil {
			return dom.User{}, err
		}
		u.ProfileImage = url
	}
	if in.CoverImage != "" {
		url, err := s.replaceImage(ctx, u.CoverImage, in.CoverImage)
		if err != nil {
			return dom.User{}, err
		}
		u.CoverImage = url
	}

	if v := strings.TrimSpace(in.FullName); v != "" {
		u.FullName = v
	}
	if v := strings.TrimSpace(in.Username); v != "" {
		u.Username = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		if !emailPattern.MatchString(v) {
			return dom.User{}, ErrInvalidEmail
		}
		u.Email = v
	}
	if v := strings.TrimSpace(in.Bio); v != "" {
		u.Bio = v
	}
	if v := strings.TrimSpace(in.Link); v != "" {
		u.Link = v
	}

	out, err := s.repo.Update(ctx, u)
	if err != nil {
		return dom.User{}, mapUniqueViolation(err)
	}
	return out, nil
}

func (s *UserService) replaceImage(ctx context.Context, oldURL, dataURL string) (string, error) {
	if oldURL != "" {
		if err := s.uploader.Remove(ctx, oldURL); err != nil {
			log.Printf("remove old image: %v", err)
		}
	}
	return s.uploader.UploadDataURL(ctx, dataURL)
}

// notify is fire and forget: a lost notification never fails the mutation.
func (s *UserService) notify(ctx context.Context, fromID, toID int64, kind dom.NotificationKind) {
	if err := s.notifications.Create(ctx, fromID, toID, kind); err != nil {
		log.Printf("emit %s notification from %d to %d: %v", kind, fromID, toID, err)
	}
}

func mapUniqueViolation(err error) error {
	switch utils.UniqueConstraint(err) {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return err
}
