package storage

import (
	"errors"

	"masterblog/app/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCorrupt is returned when the backing storage holds data that does
	// not parse as the expected structure.
	ErrCorrupt = errors.New("stored data is corrupt")

	// ErrIO is returned when the backing storage cannot be read or written.
	ErrIO = errors.New("storage i/o failure")
)

// Store is the persistence contract: whole-collection loads and saves of the
// post list and the user credential map. There are no partial updates;
// callers are expected to serialize their load-mutate-save cycles.
type Store interface {
	LoadPosts() ([]models.Post, error)
	SavePosts(posts []models.Post) error
	LoadUsers() (map[string]models.User, error)
	SaveUsers(users map[string]models.User) error
}

// SeedPosts returns the two sample posts a fresh installation starts with.
func SeedPosts() []models.Post {
	return []models.Post{
		{
			ID:       1,
			Title:    "First post",
			Content:  "This is the first post.",
			Tags:     []string{},
			Comments: []models.Comment{},
		},
		{
			ID:       2,
			Title:    "Second post",
			Content:  "This is the second post.",
			Tags:     []string{},
			Comments: []models.Comment{},
		},
	}
}
