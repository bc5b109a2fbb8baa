package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

// UserRepo provides user persistence and the follow graph edges.
// Uniqueness of username and email is enforced by the users table
// constraints; callers map unique violations to duplicate errors.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
	Update(ctx context.Context, u dom.User) (dom.User, error)

	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error

	Suggested(ctx context.Context, userID int64, limit int) ([]dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

const userColumns = `id, username, fullname, email, password_hash, bio, link, profile_image, cover_image, created_at, updated_at`

func scanUser(row pgx.Row) (dom.User, error) {
	var u dom.User
	err := row.Scan(
		&u.ID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash,
		&u.Bio, &u.Link, &u.ProfileImage, &u.CoverImage,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByID returns the user with follower/following/liked-post sets filled in.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return dom.User{}, err
	}
	return r.loadEdges(ctx, u)
}

// GetByUsername returns the user by username with edge sets filled in.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return dom.User{}, err
	}
	return r.loadEdges(ctx, u)
}

// GetByEmail returns the user by email with edge sets filled in.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return dom.User{}, err
	}
	return r.loadEdges(ctx, u)
}

// Create inserts a new user and returns it. The unique constraints on
// username and email are the final arbiter under concurrent signups.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (username, fullname, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, u.Username, u.FullName, u.Email, u.PasswordHash))
}

// Update persists the mutable profile fields and returns the fresh row.
func (r *PGUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		UPDATE users
		SET username = $2, fullname = $3, email = $4, password_hash = $5,
		    bio = $6, link = $7, profile_image = $8, cover_image = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRow(ctx, query,
		u.ID, u.Username, u.FullName, u.Email, u.PasswordHash,
		u.Bio, u.Link, u.ProfileImage, u.CoverImage,
	))
	if err != nil {
		return dom.User{}, err
	}
	return r.loadEdges(ctx, out)
}

// IsFollowing reports whether the follow edge exists.
func (r *PGUserRepo) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`,
		followerID, followedID,
	).Scan(&exists)
	return exists, err
}

// Follow inserts the edge. A single row mutation, so actor followings and
// target followers can never drift apart.
func (r *PGUserRepo) Follow(ctx context.Context, followerID, followedID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		followerID, followedID,
	)
	return err
}

// Unfollow removes the edge.
func (r *PGUserRepo) Unfollow(ctx context.Context, followerID, followedID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID,
	)
	return err
}

// Suggested returns up to limit random users the given user does not follow,
// excluding the user themselves. Edge sets are not loaded for suggestions.
func (r *PGUserRepo) Suggested(ctx context.Context, userID int64, limit int) ([]dom.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id <> $1
		  AND id NOT IN (SELECT followed_id FROM follows WHERE follower_id = $1)
		ORDER BY RANDOM()
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PGUserRepo) loadEdges(ctx context.Context, u dom.User) (dom.User, error) {
	var err error
	if u.Followers, err = r.idList(ctx,
		`SELECT follower_id FROM follows WHERE followed_id = $1 ORDER BY created_at`, u.ID); err != nil {
		return dom.User{}, err
	}
	if u.Followings, err = r.idList(ctx,
		`SELECT followed_id FROM follows WHERE follower_id = $1 ORDER BY created_at`, u.ID); err != nil {
		return dom.User{}, err
	}
	if u.LikedPosts, err = r.idList(ctx,
		`SELECT post_id FROM post_likes WHERE user_id = $1 ORDER BY created_at`, u.ID); err != nil {
		return dom.User{}, err
	}
	return u, nil
}

func (r *PGUserRepo) idList(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
