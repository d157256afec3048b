package types

import "time"

// Post is an entry on the social feed. Media holds opaque blob store keys.
type Post struct {
	ID        int       `json:"id" db:"id"`
	AccountID int       `json:"account_id" db:"account_id"`
	Content   *string   `json:"content,omitempty" db:"content"`
	Media     []string  `json:"media" db:"media"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// AuthorName and AuthorRole are joined in on feed reads: the player's
	// full name for individual accounts, the club name for organizations.
	AuthorName string `json:"author_name,omitempty" db:"-"`
	AuthorRole string `json:"role,omitempty" db:"-"`
}

// Comment is a reply on a post.
type Comment struct {
	ID        int       `json:"id" db:"id"`
	PostID    int       `json:"post_id" db:"post_id"`
	AccountID int       `json:"account_id" db:"account_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PostDetail is a post with its like count and comments.
type PostDetail struct {
	Post     Post      `json:"post"`
	Likes    int       `json:"likes"`
	Comments []Comment `json:"comments"`
}
