package controllers

import (
	"net/http"

	"pressroom/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// CommentController accepts reader comments on published posts.
type CommentController struct {
	comments *services.CommentService
	logger   zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{comments: comments, logger: logger}
}

// Create handles POST /api/post/{slug}/comment. The comment is stored
// unapproved and only surfaces once a moderator approves it.
func (c *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	data, err := decodeBody(r)
	if err != nil {
		statusError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err = c.comments.AddComment(slug, data["author_name"], data["author_email"], data["content"])
	if err != nil {
		status, msg := translate(c.logger, err, "Post not found", "Failed to add comment")
		statusError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"status":  "success",
		"message": "Comment added successfully! It will be visible after approval.",
	})
}
