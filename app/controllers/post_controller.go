package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"masterblog/app/middleware"
	"masterblog/app/services"
)

// PostController handles the HTTP surface of the post collection.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a PostController.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// Index lists posts with optional sorting and pagination.
// GET /api/posts?sort=&direction=&page=&per_page=
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := paginationParams(r)
	if err != nil {
		sendFailure(w, err)
		return
	}
	query := services.ListQuery{
		Sort:      r.URL.Query().Get("sort"),
		Direction: r.URL.Query().Get("direction"),
		Page:      page,
		PerPage:   perPage,
	}
	result, err := pc.posts.List(query)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// Search filters posts by any of the supplied criteria.
// GET /api/posts/search?title=&content=&author=&date=&category=&tags=
func (pc *PostController) Search(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := paginationParams(r)
	if err != nil {
		sendFailure(w, err)
		return
	}
	params := r.URL.Query()
	query := services.SearchQuery{
		Title:    params.Get("title"),
		Content:  params.Get("content"),
		Author:   params.Get("author"),
		Category: params.Get("category"),
		Date:     params.Get("date"),
		Tags:     params.Get("tags"),
		Page:     page,
		PerPage:  perPage,
	}
	result, err := pc.posts.Search(query)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// Show returns a single post.
// GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	post, err := pc.posts.Get(id)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create adds a new post authored by the authenticated user.
// POST /api/posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.PostInput
	if err := decodeBody(r, &input); err != nil {
		sendFailure(w, err)
		return
	}
	post, err := pc.posts.Create(input, middleware.Identity(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update partially updates a post: only the fields present in the body
// change.
// PUT /api/posts/{id}
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var input services.PostInput
	if err := decodeBody(r, &input); err != nil {
		sendFailure(w, err)
		return
	}
	post, err := pc.posts.Update(id, input)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete removes a post and its comments.
// DELETE /api/posts/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := pc.posts.Delete(id); err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Post with id %d has been deleted successfully.", id),
	})
}

// paginationParams parses page/per_page, leaving 0 for absent values so the
// service applies its defaults. A supplied value must be a positive integer;
// anything else, zero included, is a validation error.
func paginationParams(r *http.Request) (int, int, error) {
	page, err := positiveIntParam(r, "page")
	if err != nil {
		return 0, 0, err
	}
	perPage, err := positiveIntParam(r, "per_page")
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

func positiveIntParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, invalidPagination(name)
	}
	return v, nil
}
