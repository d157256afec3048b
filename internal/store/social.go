package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/PranamRaj/football-connect/types"
)

// SocialRepository handles persistence for feed posts, likes and comments.
type SocialRepository struct {
	db *sql.DB
}

func NewSocialRepository(db *sql.DB) *SocialRepository {
	return &SocialRepository{db: db}
}

func (r *SocialRepository) CreatePost(ctx context.Context, post types.Post) (types.Post, error) {
	post.CreatedAt = time.Now()
	if post.Media == nil {
		post.Media = []string{}
	}
	mediaJSON, err := json.Marshal(post.Media)
	if err != nil {
		return types.Post{}, err
	}

	const query = `
		INSERT INTO social_posts (account_id, content, media, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, post.AccountID, post.Content, mediaJSON, post.CreatedAt).Scan(&post.ID); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

// ListPosts returns the latest posts with the author's display name joined
// in: the player's full name for individual accounts, the club name for
// organizations.
func (r *SocialRepository) ListPosts(ctx context.Context, limit int) ([]types.Post, error) {
	if limit < 1 {
		limit = 100
	}

	const query = `
		SELECT sp.id, sp.account_id, sp.content, sp.media, sp.created_at, a.role,
			COALESCE(CASE WHEN a.role = 'individual' THEN p.full_name ELSE c.name END, '')
		FROM social_posts sp
		JOIN accounts a ON sp.account_id = a.id
		LEFT JOIN players p ON p.account_id = a.id
		LEFT JOIN clubs c ON c.account_id = a.id
		ORDER BY sp.created_at DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0, limit)
	for rows.Next() {
		var post types.Post
		var mediaJSON []byte
		if err := rows.Scan(&post.ID, &post.AccountID, &post.Content, &mediaJSON, &post.CreatedAt, &post.AuthorRole, &post.AuthorName); err != nil {
			return nil, err
		}
		post.Media = []string{}
		_ = json.Unmarshal(mediaJSON, &post.Media)
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *SocialRepository) GetPost(ctx context.Context, id int) (types.Post, error) {
	const query = `
		SELECT id, account_id, content, media, created_at
		FROM social_posts
		WHERE id = $1`
	var post types.Post
	var mediaJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.AccountID, &post.Content, &mediaJSON, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	post.Media = []string{}
	_ = json.Unmarshal(mediaJSON, &post.Media)
	return post, nil
}

// LikePost records a like; liking the same post twice is a no-op.
func (r *SocialRepository) LikePost(ctx context.Context, postID, accountID int) error {
	const query = `
		INSERT INTO social_likes (post_id, account_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, account_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, postID, accountID)
	return err
}

func (r *SocialRepository) CountLikes(ctx context.Context, postID int) (int, error) {
	const query = `SELECT COUNT(*) FROM social_likes WHERE post_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, postID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SocialRepository) AddComment(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.CreatedAt = time.Now()

	const query = `
		INSERT INTO social_comments (post_id, account_id, comment, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.AccountID, comment.Comment, comment.CreatedAt).Scan(&comment.ID); err != nil {
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *SocialRepository) ListComments(ctx context.Context, postID int) ([]types.Comment, error) {
	const query = `
		SELECT id, post_id, account_id, comment, created_at
		FROM social_comments
		WHERE post_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0)
	for rows.Next() {
		var c types.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AccountID, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
