package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masterblog/app/models"
)

func TestFileStoreSeedsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	posts, err := store.LoadPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First post", posts[0].Title)
	assert.Equal(t, "Second post", posts[1].Title)

	// The backing file must now exist and be pretty-printed JSON.
	data, err := os.ReadFile(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")

	users, err := store.LoadUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	posts, err := store.LoadPosts()
	require.NoError(t, err)

	// Saving what was loaded must not change the stored content.
	require.NoError(t, store.SavePosts(posts))
	again, err := store.LoadPosts()
	require.NoError(t, err)
	assert.Equal(t, posts, again)

	posts = append(posts, models.Post{
		ID: 3, Title: "T", Content: "C", Author: "alice",
		Date: "2023-06-07", Category: "go", Tags: []string{"a", "b"},
		Comments: []models.Comment{{ID: 1, Text: "hi", Author: "bob"}},
	})
	require.NoError(t, store.SavePosts(posts))

	reloaded, err := store.LoadPosts()
	require.NoError(t, err)
	assert.Equal(t, posts, reloaded)
}

func TestFileStoreUsersRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	users := map[string]models.User{
		"alice": {ID: 1, Username: "alice", Password: "$2a$10$hash"},
	}
	require.NoError(t, store.SaveUsers(users))

	reloaded, err := store.LoadUsers()
	require.NoError(t, err)
	assert.Equal(t, users, reloaded)
}

func TestFileStoreCorruptData(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.json"), []byte("{not json"), 0o644))
	_, err = store.LoadPosts()
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("[]"), 0o644))
	_, err = store.LoadUsers()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStoreSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.LoadPosts()
	require.NoError(t, err)
	require.NoError(t, store.SavePosts([]models.Post{{ID: 1, Title: "T", Content: "C"}}))

	// No temp file may be left behind after a successful save.
	_, err = os.Stat(filepath.Join(dir, "posts.json.tmp"))
	assert.True(t, os.IsNotExist(err))

	var posts []models.Post
	data, err := os.ReadFile(filepath.Join(dir, "posts.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &posts))
	assert.Len(t, posts, 1)
}

func TestSeedPostsAreIndependent(t *testing.T) {
	a := SeedPosts()
	a[0].Title = "mutated"
	b := SeedPosts()
	assert.Equal(t, "First post", b[0].Title)
}
