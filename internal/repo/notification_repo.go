package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

// NotificationRepo persists notification records. Creation gives no delivery
// guarantee beyond the row existing; there is no push channel.
type NotificationRepo interface {
	Create(ctx context.Context, fromID, toID int64, kind dom.NotificationKind) error
	ListByRecipient(ctx context.Context, toID int64) ([]dom.Notification, error)
	MarkAllRead(ctx context.Context, toID int64) error
	GetByID(ctx context.Context, id int64) (dom.Notification, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context, toID int64) error
}

// PGNotificationRepo implements NotificationRepo with Postgres.
type PGNotificationRepo struct {
	db *pgxpool.Pool
}

// NewPGNotificationRepo returns a new PGNotificationRepo.
func NewPGNotificationRepo(db *pgxpool.Pool) *PGNotificationRepo {
	return &PGNotificationRepo{db: db}
}

// Create inserts an unread notification.
func (r *PGNotificationRepo) Create(ctx context.Context, fromID, toID int64, kind dom.NotificationKind) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (from_id, to_id, kind) VALUES ($1, $2, $3)`,
		fromID, toID, string(kind),
	)
	return err
}

// ListByRecipient returns the recipient's notifications, newest first, with
// the sender's username and profile image joined in.
func (r *PGNotificationRepo) ListByRecipient(ctx context.Context, toID int64) ([]dom.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.id, n.from_id, n.to_id, n.kind, n.read, n.created_at,
		       u.id, u.username, u.fullname, u.profile_image
		FROM notifications n
		JOIN users u ON u.id = n.from_id
		WHERE n.to_id = $1
		ORDER BY n.created_at DESC, n.id DESC`, toID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Notification
	for rows.Next() {
		var n dom.Notification
		if err := rows.Scan(
			&n.ID, &n.FromID, &n.ToID, &n.Kind, &n.Read, &n.CreatedAt,
			&n.From.ID, &n.From.Username, &n.From.FullName, &n.From.ProfileImage,
		); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkAllRead flags every notification for the recipient as read in one update.
func (r *PGNotificationRepo) MarkAllRead(ctx context.Context, toID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE to_id = $1 AND read = FALSE`, toID)
	return err
}

// GetByID returns a single notification without the sender join.
func (r *PGNotificationRepo) GetByID(ctx context.Context, id int64) (dom.Notification, error) {
	var n dom.Notification
	err := r.db.QueryRow(ctx,
		`SELECT id, from_id, to_id, kind, read, created_at FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.FromID, &n.ToID, &n.Kind, &n.Read, &n.CreatedAt)
	return n, err
}

// Delete removes one notification.
func (r *PGNotificationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}

// DeleteAll removes every notification addressed to the recipient.
func (r *PGNotificationRepo) DeleteAll(ctx context.Context, toID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE to_id = $1`, toID)
	return err
}
