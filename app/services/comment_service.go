package services

import (
	"strings"

	"pressroom/app/models"
	"pressroom/app/repositories"
)

// CommentService handles the embedded comment subsystem
type CommentService struct {
	posts repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(posts repositories.PostRepository) *CommentService {
	return &CommentService{posts: posts}
}

// AddComment appends an unapproved comment to a published post and
// re-saves the whole document. Concurrent additions to the same post
// race as a consequence; the last writer wins.
func (s *CommentService) AddComment(slug, authorName, authorEmail, content string) (*models.Comment, error) {
	authorName = strings.TrimSpace(authorName)
	authorEmail = strings.TrimSpace(authorEmail)
	content = strings.TrimSpace(content)

	if authorName == "" {
		return nil, requiredField("author_name")
	}
	if authorEmail == "" {
		return nil, requiredField("author_email")
	}
	if content == "" {
		return nil, requiredField("content")
	}

	post, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, repositories.ErrNotFound
	}

	comment := post.AddComment(authorName, authorEmail, content)
	if err := s.posts.Save(post); err != nil {
		return nil, err
	}
	return comment, nil
}

// ApproveComment clears the comment at the given position for display
// and re-saves the post.
func (s *CommentService) ApproveComment(slug string, index int) error {
	post, err := s.posts.GetBySlug(slug)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(post.Comments) {
		return repositories.ErrNotFound
	}
	post.Comments[index].IsApproved = true
	return s.posts.Save(post)
}
