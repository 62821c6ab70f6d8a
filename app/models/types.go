package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Post represents a blog post with its comments.
type Post struct {
	ID       int       `json:"id" validate:"gte=0"`
	Title    string    `json:"title" validate:"required"`
	Content  string    `json:"content" validate:"required"`
	Author   string    `json:"author"`
	Date     string    `json:"date"`
	Category string    `json:"category"`
	Tags     []string  `json:"tags"`
	Comments []Comment `json:"comments"`

	// CommentSeq is the last comment id handed out for this post. Persisted
	// so comment ids are never reused after a deletion.
	CommentSeq int `json:"comment_seq,omitempty"`
}

// Comment represents a reply attached to exactly one post.
type Comment struct {
	ID     int    `json:"id" validate:"gte=0"`
	Text   string `json:"text" validate:"required"`
	Author string `json:"author"`
}

// User is a stored credential record. Password holds a bcrypt hash, never
// the plain text.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
