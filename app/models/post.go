package models

import (
	"errors"
	"time"
)

const (
	excerptMax  = 300
	excerptTrim = 297
)

// Validate checks if the post meets all validation requirements
func (p *BlogPost) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Slug == "" && p.Title == "" {
		return errors.New("post needs a slug or a title to derive one from")
	}

	return nil
}

// BeforeSave populates derived fields ahead of every write. Order
// matters: slug, excerpt, publish timestamp, then updated_at.
func (p *BlogPost) BeforeSave() {
	now := time.Now().UTC()

	// Slug is sticky: derived once from the title, never re-slugified.
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}

	if p.Excerpt == "" && p.Content != "" {
		runes := []rune(p.Content)
		if len(runes) > excerptMax {
			p.Excerpt = string(runes[:excerptTrim]) + "..."
		} else {
			p.Excerpt = p.Content
		}
	}

	// First transition to published stamps the publication time exactly
	// once; unpublishing and republishing keeps the original timestamp.
	if p.IsPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// AddComment appends an unapproved comment to the post's embedded
// sequence. The caller is responsible for persisting the post.
func (p *BlogPost) AddComment(authorName, authorEmail, content string) *Comment {
	comment := Comment{
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
		IsApproved:  false,
	}
	p.Comments = append(p.Comments, comment)
	return &p.Comments[len(p.Comments)-1]
}

// ApprovedComments returns only the comments cleared for display.
// Computed on every read, never cached.
func (p *BlogPost) ApprovedComments() []Comment {
	var approved []Comment
	for _, comment := range p.Comments {
		if comment.IsApproved {
			approved = append(approved, comment)
		}
	}
	return approved
}

// CommentCount is the number of approved comments.
func (p *BlogPost) CommentCount() int {
	return len(p.ApprovedComments())
}

// HasTag reports whether the post carries the given tag.
func (p *BlogPost) HasTag(tagID string) bool {
	for _, id := range p.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}
