package services

import (
	"context"
	"strings"

	"github.com/PranamRaj/football-connect/internal/events"
	"github.com/PranamRaj/football-connect/types"
)

// MaxPostMedia caps the number of media uploads on a single post.
const MaxPostMedia = 6

// SocialRepository defines persistence operations for the feed.
type SocialRepository interface {
	CreatePost(ctx context.Context, post types.Post) (types.Post, error)
	ListPosts(ctx context.Context, limit int) ([]types.Post, error)
	GetPost(ctx context.Context, id int) (types.Post, error)
	LikePost(ctx context.Context, postID, accountID int) error
	CountLikes(ctx context.Context, postID int) (int, error)
	AddComment(ctx context.Context, comment types.Comment) (types.Comment, error)
	ListComments(ctx context.Context, postID int) ([]types.Comment, error)
}

// SocialService encapsulates feed use-cases.
type SocialService struct {
	repo   SocialRepository
	blobs  BlobStore
	events *events.Publisher
}

func NewSocialService(repo SocialRepository, blobs BlobStore, publisher *events.Publisher) *SocialService {
	return &SocialService{repo: repo, blobs: blobs, events: publisher}
}

// CreatePost publishes a feed post with optional media attachments. A post
// needs content or at least one attachment.
func (s *SocialService) CreatePost(ctx context.Context, accountID int, content string, media []Attachment) (types.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(media) == 0 {
		return types.Post{}, validationErr("content or media required")
	}
	if len(media) > MaxPostMedia {
		return types.Post{}, validationErr("too many media files")
	}

	keys := make([]string, 0, len(media))
	for _, m := range media {
		key, err := s.blobs.Store(ctx, m.Data, m.Filename)
		if err != nil {
			return types.Post{}, err
		}
		keys = append(keys, key)
	}

	post := types.Post{AccountID: accountID, Media: keys}
	if content != "" {
		post.Content = &content
	}

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return types.Post{}, err
	}

	s.events.PostCreated(ctx, accountID, created.ID)
	return created, nil
}

func (s *SocialService) ListFeed(ctx context.Context, limit int) ([]types.Post, error) {
	return s.repo.ListPosts(ctx, limit)
}

// PostDetail returns a post with its like count and comments.
func (s *SocialService) PostDetail(ctx context.Context, id int) (types.PostDetail, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return types.PostDetail{}, err
	}

	likes, err := s.repo.CountLikes(ctx, id)
	if err != nil {
		return types.PostDetail{}, err
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return types.PostDetail{}, err
	}

	return types.PostDetail{Post: post, Likes: likes, Comments: comments}, nil
}

// Like records a like; repeated likes from the same account are no-ops.
func (s *SocialService) Like(ctx context.Context, postID, accountID int) error {
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return err
	}
	return s.repo.LikePost(ctx, postID, accountID)
}

func (s *SocialService) Comment(ctx context.Context, postID, accountID int, text string) (types.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.Comment{}, validationErr("comment is required")
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return types.Comment{}, err
	}
	return s.repo.AddComment(ctx, types.Comment{PostID: postID, AccountID: accountID, Comment: text})
}
