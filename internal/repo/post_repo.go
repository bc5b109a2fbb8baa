package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "github.com/anousone23/twitter-clone/internal/domain"
)

// PostRepo provides post persistence, the like edges and embedded comments.
type PostRepo interface {
	Create(ctx context.Context, p dom.Post) (dom.Post, error)
	GetByID(ctx context.Context, id int64) (dom.Post, error)
	Delete(ctx context.Context, id int64) error

	ListAll(ctx context.Context) ([]dom.Post, error)
	ListByUserID(ctx context.Context, userID int64) ([]dom.Post, error)
	ListByFollowed(ctx context.Context, followerID int64) ([]dom.Post, error)
	ListLikedBy(ctx context.Context, userID int64) ([]dom.Post, error)

	AddComment(ctx context.Context, postID, userID int64, text string) (dom.Comment, error)

	HasLiked(ctx context.Context, postID, userID int64) (bool, error)
	Like(ctx context.Context, postID, userID int64) error
	Unlike(ctx context.Context, postID, userID int64) error
	LikerIDs(ctx context.Context, postID int64) ([]int64, error)
}

// PGPostRepo implements PostRepo with Postgres.
type PGPostRepo struct {
	db *pgxpool.Pool
}

// NewPGPostRepo returns a new PGPostRepo.
func NewPGPostRepo(db *pgxpool.Pool) *PGPostRepo {
	return &PGPostRepo{db: db}
}

const postSelect = `
	SELECT p.id, p.user_id, p.text, p.image, p.created_at,
	       u.id, u.username, u.fullname, u.profile_image
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func scanPost(row pgx.Row) (dom.Post, error) {
	var p dom.Post
	err := row.Scan(
		&p.ID, &p.UserID, &p.Text, &p.Image, &p.CreatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.FullName, &p.Author.ProfileImage,
	)
	return p, err
}

// Create inserts a post and returns it populated.
func (r *PGPostRepo) Create(ctx context.Context, p dom.Post) (dom.Post, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO posts (user_id, text, image) VALUES ($1, $2, $3) RETURNING id`,
		p.UserID, p.Text, p.Image,
	).Scan(&id)
	if err != nil {
		return dom.Post{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns the post with author, likes and comments populated.
func (r *PGPostRepo) GetByID(ctx context.Context, id int64) (dom.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return dom.Post{}, err
	}
	posts := []dom.Post{p}
	if err := r.populate(ctx, posts); err != nil {
		return dom.Post{}, err
	}
	return posts[0], nil
}

// Delete removes the post; comments and like edges go with it via cascade.
func (r *PGPostRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

// ListAll returns every post, newest first.
func (r *PGPostRepo) ListAll(ctx context.Context) ([]dom.Post, error) {
	return r.list(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC`)
}

// ListByUserID returns a single user's posts, newest first.
func (r *PGPostRepo) ListByUserID(ctx context.Context, userID int64) ([]dom.Post, error) {
	return r.list(ctx, postSelect+` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id DESC`, userID)
}

// ListByFollowed returns posts authored by users the follower follows.
func (r *PGPostRepo) ListByFollowed(ctx context.Context, followerID int64) ([]dom.Post, error) {
	query := postSelect + `
		WHERE p.user_id IN (SELECT followed_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC, p.id DESC`
	return r.list(ctx, query, followerID)
}

// ListLikedBy returns posts the user has liked, most recently liked first.
func (r *PGPostRepo) ListLikedBy(ctx context.Context, userID int64) ([]dom.Post, error) {
	query := `
	SELECT p.id, p.user_id, p.text, p.image, p.created_at,
	       u.id, u.username, u.fullname, u.profile_image
	FROM post_likes pl
	JOIN posts p ON p.id = pl.post_id
	JOIN users u ON u.id = p.user_id
	WHERE pl.user_id = $1
	ORDER BY pl.created_at DESC`
	return r.list(ctx, query, userID)
}

// AddComment appends a comment to the post.
func (r *PGPostRepo) AddComment(ctx context.Context, postID, userID int64, text string) (dom.Comment, error) {
	var c dom.Comment
	err := r.db.QueryRow(ctx,
		`INSERT INTO post_comments (post_id, user_id, text) VALUES ($1, $2, $3)
		 RETURNING id, post_id, user_id, text, created_at`,
		postID, userID, text,
	).Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt)
	return c, err
}

// HasLiked reports whether the like edge exists.
func (r *PGPostRepo) HasLiked(ctx context.Context, postID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&exists)
	return exists, err
}

// Like inserts the like edge; the user's liked-posts view derives from it.
func (r *PGPostRepo) Like(ctx context.Context, postID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	return err
}

// Unlike removes the like edge.
func (r *PGPostRepo) Unlike(ctx context.Context, postID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	return err
}

// LikerIDs returns the IDs of users who like the post, oldest like first.
func (r *PGPostRepo) LikerIDs(ctx context.Context, postID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at`, postID)
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

func (r *PGPostRepo) list(ctx context.Context, query string, args ...any) ([]dom.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []dom.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populate(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// populate fills likes and comments for the given posts in two queries.
func (r *PGPostRepo) populate(ctx context.Context, posts []dom.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Likes = []int64{}
		posts[i].Comments = []dom.Comment{}
	}

	likeRows, err := r.db.Query(ctx,
		`SELECT post_id, user_id FROM post_likes WHERE post_id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return err
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var postID, userID int64
		if err := likeRows.Scan(&postID, &userID); err != nil {
			return err
		}
		i := index[postID]
		posts[i].Likes = append(posts[i].Likes, userID)
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := r.db.Query(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.text, c.created_at,
		       u.id, u.username, u.fullname, u.profile_image
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var c dom.Comment
		if err := commentRows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt,
			&c.Author.ID, &c.Author.Username, &c.Author.FullName, &c.Author.ProfileImage,
		); err != nil {
			return err
		}
		i := index[c.PostID]
		posts[i].Comments = append(posts[i].Comments, c)
	}
	return commentRows.Err()
}
