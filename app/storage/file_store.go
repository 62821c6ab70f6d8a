package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"masterblog/app/models"
)

const (
	postsFile = "posts.json"
	usersFile = "users.json"
)

// FileStore persists each collection as one pretty-printed JSON file under a
// data directory. Missing files are created with seed defaults on first load.
type FileStore struct {
	postsPath string
	usersPath string
}

// NewFileStore creates the data directory if needed and returns a store
// rooted in it.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrIO, err)
	}
	return &FileStore{
		postsPath: filepath.Join(dataDir, postsFile),
		usersPath: filepath.Join(dataDir, usersFile),
	}, nil
}

// LoadPosts reads the full post collection. On first run the file is created
// with the two seed posts and the seeded collection is returned.
func (s *FileStore) LoadPosts() ([]models.Post, error) {
	data, err := os.ReadFile(s.postsPath)
	if os.IsNotExist(err) {
		seed := SeedPosts()
		if err := s.SavePosts(seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, s.postsPath, err)
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, s.postsPath, err)
	}
	return posts, nil
}

// SavePosts atomically overwrites the post file with the given collection.
func (s *FileStore) SavePosts(posts []models.Post) error {
	return s.writeJSON(s.postsPath, posts)
}

// LoadUsers reads the credential map, seeding an empty one if absent.
func (s *FileStore) LoadUsers() (map[string]models.User, error) {
	data, err := os.ReadFile(s.usersPath)
	if os.IsNotExist(err) {
		users := map[string]models.User{}
		if err := s.SaveUsers(users); err != nil {
			return nil, err
		}
		return users, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIO, s.usersPath, err)
	}

	var users map[string]models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, s.usersPath, err)
	}
	return users, nil
}

// SaveUsers atomically overwrites the user file with the given map.
func (s *FileStore) SaveUsers(users map[string]models.User) error {
	return s.writeJSON(s.usersPath, users)
}

// writeJSON serializes v indented and swaps it into place via a temp file so
// a crash mid-write never leaves a truncated collection behind.
func (s *FileStore) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrIO, path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrIO, path, err)
	}
	return nil
}
