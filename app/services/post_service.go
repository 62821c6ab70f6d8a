package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"masterblog/app/models"
	"masterblog/app/storage"
)

// PostInput carries the decoded request body for create and update calls.
// Pointer fields distinguish "absent" from "present but empty" so updates
// can be partial.
type PostInput struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Author   *string  `json:"author"`
	Date     *string  `json:"date"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
}

// ListQuery selects ordering and pagination for the list endpoint. Zero
// Page/PerPage mean the defaults (1 and 10).
type ListQuery struct {
	Sort      string
	Direction string
	Page      int
	PerPage   int
}

// SearchQuery holds the raw search criteria. Empty fields are ignored; a
// post matches when any supplied criterion matches.
type SearchQuery struct {
	Title    string
	Content  string
	Author   string
	Category string
	Date     string
	Tags     string
	Page     int
	PerPage  int
}

// Page is the pagination envelope returned by list and search.
type Page struct {
	Items   []models.Post `json:"items"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

var sortFields = map[string]func(p *models.Post) string{
	"title":    func(p *models.Post) string { return p.Title },
	"content":  func(p *models.Post) string { return p.Content },
	"category": func(p *models.Post) string { return p.Category },
	"author":   func(p *models.Post) string { return p.Author },
	"date":     func(p *models.Post) string { return p.Date },
}

// PostService owns the post collection: queries, mutations and the
// serialization of every load-mutate-save cycle behind one mutex.
type PostService struct {
	store storage.Store
	mu    sync.Mutex
	now   func() time.Time

	// lastID is a high-water mark over every post id seen or handed out,
	// so deleting the highest post cannot cause its id to be reissued.
	lastID int
}

// NewPostService creates a PostService backed by the given store.
func NewPostService(store storage.Store) *PostService {
	return &PostService{store: store, now: time.Now}
}

// snapshot returns the current collection under the lock. The returned slice
// is the caller's to reorder and slice.
func (s *PostService) snapshot() ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadPosts()
}

// modify runs fn on the loaded collection and saves the result, all under
// the lock so concurrent writers cannot clobber each other. The id mark is
// raised here, before fn runs, so an id freed by the mutation itself still
// counts as observed.
func (s *PostService) modify(fn func(posts []models.Post) ([]models.Post, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.LoadPosts()
	if err != nil {
		return err
	}
	if max := models.MaxID(posts); max > s.lastID {
		s.lastID = max
	}
	posts, err = fn(posts)
	if err != nil {
		return err
	}
	return s.store.SavePosts(posts)
}

// List returns one page of the collection, optionally sorted.
func (s *PostService) List(q ListQuery) (*Page, error) {
	if q.Sort != "" {
		if _, ok := sortFields[q.Sort]; !ok {
			return nil, models.NewValidationError(
				"Invalid sort field. Use 'title', 'content', 'author', 'category' or 'date'", "sort")
		}
	}
	direction := q.Direction
	if direction == "" {
		direction = "asc"
	}
	if direction != "asc" && direction != "desc" {
		return nil, models.NewValidationError("Invalid direction. Use 'asc' or 'desc'", "direction")
	}
	page, perPage, err := normalizePagination(q.Page, q.PerPage)
	if err != nil {
		return nil, err
	}

	posts, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if q.Sort != "" {
		sortPosts(posts, q.Sort, direction == "desc")
	}
	return paginate(posts, page, perPage), nil
}

// Search returns one page of the posts matching any of the supplied
// criteria. With no criteria at all, nothing matches and the result is
// empty; clients rely on that, so a regression test pins it.
func (s *PostService) Search(q SearchQuery) (*Page, error) {
	if q.Date != "" && !models.IsValidDate(q.Date) {
		return nil, models.NewValidationError("Invalid date format. Use YYYY-MM-DD", "date")
	}
	page, perPage, err := normalizePagination(q.Page, q.PerPage)
	if err != nil {
		return nil, err
	}

	posts, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	tags := splitTags(q.Tags)
	matched := make([]models.Post, 0, len(posts))
	for i := range posts {
		if matchesPost(&posts[i], &q, tags) {
			matched = append(matched, posts[i])
		}
	}
	return paginate(matched, page, perPage), nil
}

// Get returns the post with the given id.
func (s *PostService) Get(id int) (*models.Post, error) {
	posts, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, fmt.Errorf("post with id %d: %w", id, storage.ErrNotFound)
}

// Create validates the input, fills defaults and appends a new post. Ids
// come from the high-water mark over max(existing ids), so an id freed by a
// delete is not handed out again.
func (s *PostService) Create(input PostInput, identity string) (*models.Post, error) {
	post := models.Post{
		Author:   identity,
		Date:     s.now().Format(models.DateLayout),
		Tags:     []string{},
		Comments: []models.Comment{},
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Author != nil && *input.Author != "" {
		post.Author = *input.Author
	}
	if input.Date != nil && *input.Date != "" {
		post.Date = *input.Date
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}

	err := s.modify(func(posts []models.Post) ([]models.Post, error) {
		s.lastID++
		post.ID = s.lastID
		return append(posts, post), nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update overwrites only the fields present in the input, leaving the rest
// untouched.
func (s *PostService) Update(id int, input PostInput) (*models.Post, error) {
	if input.Date != nil && *input.Date != "" && !models.IsValidDate(*input.Date) {
		return nil, models.NewValidationError("Invalid date format. Use YYYY-MM-DD", "date")
	}

	var updated models.Post
	err := s.modify(func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID != id {
				continue
			}
			applyInput(&posts[i], input)
			updated = posts[i]
			return posts, nil
		}
		return nil, fmt.Errorf("post with id %d: %w", id, storage.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the post and, with it, all its comments.
func (s *PostService) Delete(id int) error {
	return s.modify(func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID == id {
				return append(posts[:i], posts[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("post with id %d: %w", id, storage.ErrNotFound)
	})
}

func applyInput(post *models.Post, input PostInput) {
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Author != nil {
		post.Author = *input.Author
	}
	if input.Date != nil {
		post.Date = *input.Date
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
}

// sortPosts orders the slice by the given field, case-insensitively for text
// fields and by calendar value for dates. The sort is stable, and descending
// order compares with swapped arguments so ties keep their relative order in
// both directions.
func sortPosts(posts []models.Post, field string, desc bool) {
	var less func(a, b *models.Post) bool
	if field == "date" {
		less = func(a, b *models.Post) bool {
			return models.ParseDateOrZero(a.Date).Before(models.ParseDateOrZero(b.Date))
		}
	} else {
		key := sortFields[field]
		less = func(a, b *models.Post) bool {
			return strings.ToLower(key(a)) < strings.ToLower(key(b))
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if desc {
			return less(&posts[j], &posts[i])
		}
		return less(&posts[i], &posts[j])
	})
}

func normalizePagination(page, perPage int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = 10
	}
	if page < 1 || perPage < 1 {
		return 0, 0, models.NewValidationError(
			"Invalid pagination. 'page' and 'per_page' must be positive integers", "page", "per_page")
	}
	return page, perPage, nil
}

// paginate slices one page out of posts. Out-of-range pages yield an empty
// item list; Total always counts the full pre-pagination set.
func paginate(posts []models.Post, page, perPage int) *Page {
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}
	items := make([]models.Post, end-start)
	copy(items, posts[start:end])
	return &Page{Items: items, Total: len(posts), Page: page, PerPage: perPage}
}

// splitTags turns a comma-separated tag query into trimmed, lowercased
// terms, dropping empties.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// matchesPost applies the OR rule: any supplied criterion that matches
// includes the post. Text criteria are case-insensitive substring checks,
// the date criterion is a substring check against the stored text, and tags
// match on exact case-insensitive equality with any post tag.
func matchesPost(post *models.Post, q *SearchQuery, tags []string) bool {
	if q.Title != "" && containsFold(post.Title, q.Title) {
		return true
	}
	if q.Content != "" && containsFold(post.Content, q.Content) {
		return true
	}
	if q.Author != "" && containsFold(post.Author, q.Author) {
		return true
	}
	if q.Category != "" && containsFold(post.Category, q.Category) {
		return true
	}
	if q.Date != "" && strings.Contains(post.Date, q.Date) {
		return true
	}
	for _, want := range tags {
		for _, have := range post.Tags {
			if strings.ToLower(have) == want {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
