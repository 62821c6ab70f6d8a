package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"masterblog/app/middleware"
	"masterblog/app/services"
)

// CommentController handles the HTTP surface of post comments.
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a CommentController.
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// Index lists a post's comments in stored order.
// GET /api/posts/{postId}/comments
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, _ := strconv.Atoi(mux.Vars(r)["postId"])
	comments, err := cc.comments.ListForPost(postID)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create adds a comment authored by the authenticated user.
// POST /api/posts/{postId}/comments
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, _ := strconv.Atoi(mux.Vars(r)["postId"])
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &body); err != nil {
		sendFailure(w, err)
		return
	}
	comment, err := cc.comments.Add(postID, body.Text, middleware.Identity(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Delete removes a comment. Only its author may do so.
// DELETE /api/posts/{postId}/comments/{commentId}
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, _ := strconv.Atoi(vars["postId"])
	commentID, _ := strconv.Atoi(vars["commentId"])
	if err := cc.comments.Delete(postID, commentID, middleware.Identity(r)); err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Comment with id %d has been deleted successfully.", commentID),
	})
}
