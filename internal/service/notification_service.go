package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	dom "github.com/anousone23/twitter-clone/internal/domain"
	"github.com/anousone23/twitter-clone/internal/repo"
)

// NotificationService lists and deletes a user's notifications.
type NotificationService struct {
	repo repo.NotificationRepo
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(r repo.NotificationRepo) *NotificationService {
	return &NotificationService{repo: r}
}

// List returns the user's notifications and, as a side effect, marks all of
// them read in one batch update. The returned items carry the read flags as
// they were at fetch time.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]dom.Notification, error) {
	list, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []dom.Notification{}, nil
	}
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteAll removes every notification addressed to the user.
func (s *NotificationService) DeleteAll(ctx context.Context, userID int64) error {
	return s.repo.DeleteAll(ctx, userID)
}

// Delete removes one notification; only the recipient may delete it.
func (s *NotificationService) Delete(ctx context.Context, userID, id int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if n.ToID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
