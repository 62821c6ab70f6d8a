package services

import (
	"errors"
	"fmt"

	"masterblog/app/models"
	"masterblog/app/storage"
)

// ErrForbidden is returned when the acting identity may not perform the
// operation, e.g. deleting someone else's comment.
var ErrForbidden = errors.New("forbidden")

// CommentService manages the comments nested inside posts. It works through
// the PostService so every mutation shares the same collection lock.
type CommentService struct {
	posts *PostService
}

// NewCommentService creates a CommentService on top of the given PostService.
func NewCommentService(posts *PostService) *CommentService {
	return &CommentService{posts: posts}
}

// ListForPost returns the post's comments in stored order.
func (s *CommentService) ListForPost(postID int) ([]models.Comment, error) {
	post, err := s.posts.Get(postID)
	if err != nil {
		return nil, err
	}
	if post.Comments == nil {
		return []models.Comment{}, nil
	}
	return post.Comments, nil
}

// Add appends a comment to the post. The author is always the acting
// identity; ids come from the post's monotonic comment sequence and are
// never reused after a deletion.
func (s *CommentService) Add(postID int, text, identity string) (*models.Comment, error) {
	comment := models.Comment{Text: text, Author: identity}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	err := s.posts.modify(func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != postID {
				continue
			}
			comment.ID = posts[i].NextCommentID()
			posts[i].AddComment(comment)
			return posts, nil
		}
		return nil, fmt.Errorf("post with id %d: %w", postID, storage.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the comment. Only the comment's author may delete it.
func (s *CommentService) Delete(postID, commentID int, identity string) error {
	return s.posts.modify(func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != postID {
				continue
			}
			comment, ok := posts[i].FindComment(commentID)
			if !ok {
				return nil, fmt.Errorf("comment with id %d: %w", commentID, storage.ErrNotFound)
			}
			if comment.Author != identity {
				return nil, fmt.Errorf("delete comment %d: %w", commentID, ErrForbidden)
			}
			posts[i].RemoveComment(commentID)
			return posts, nil
		}
		return nil, fmt.Errorf("post with id %d: %w", postID, storage.ErrNotFound)
	})
}
