package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User holds login credentials and role flags. Posts never reference a
// User directly; Author is the indirection layer.
type User struct {
	ID        string `json:"id" validate:"-"`
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	// Password is the bcrypt hash. It must round-trip through the
	// stored document; API payloads never carry a User, so the tag
	// does not leak it.
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=50"`
	LastName  string `json:"last_name" validate:"max=50"`

	IsActive    bool `json:"is_active"`
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`

	DateJoined time.Time  `json:"date_joined" validate:"-"`
	LastLogin  *time.Time `json:"last_login,omitempty" validate:"-"`

	Bio       string `json:"bio" validate:"max=500"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// Author is the byline profile for blog posts. It is materialized from a
// User at creation time and not kept in sync afterwards.
type Author struct {
	ID        string    `json:"id" validate:"-"`
	UserID    string    `json:"user_id" validate:"required"`
	Username  string    `json:"username" validate:"required,max=50"`
	Email     string    `json:"email" validate:"required,email"`
	FirstName string    `json:"first_name" validate:"max=50"`
	LastName  string    `json:"last_name" validate:"max=50"`
	Bio       string    `json:"bio" validate:"max=500"`
	AvatarURL string    `json:"avatar_url" validate:"omitempty,url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at" validate:"-"`
	UpdatedAt time.Time `json:"updated_at" validate:"-"`
}

// Tag labels blog posts. Slug is derived from the name on first save.
type Tag struct {
	ID          string    `json:"id" validate:"-"`
	Name        string    `json:"name" validate:"required,max=50"`
	Slug        string    `json:"slug" validate:"max=50"`
	Description string    `json:"description" validate:"max=200"`
	CreatedAt   time.Time `json:"created_at" validate:"-"`
}

// Category groups blog posts. ParentID allows sub-categories; the
// parent chain is not guarded against cycles.
type Category struct {
	ID          string    `json:"id" validate:"-"`
	Name        string    `json:"name" validate:"required,max=100"`
	Slug        string    `json:"slug" validate:"max=100"`
	Description string    `json:"description" validate:"max=300"`
	ParentID    string    `json:"parent_id,omitempty" validate:"-"`
	CreatedAt   time.Time `json:"created_at" validate:"-"`
}

// Comment is embedded in a BlogPost. It has no identity of its own and
// lives and dies with the owning post.
type Comment struct {
	AuthorName  string    `json:"author_name" validate:"required,max=100"`
	AuthorEmail string    `json:"author_email" validate:"required,email"`
	Content     string    `json:"content" validate:"required"`
	CreatedAt   time.Time `json:"created_at" validate:"-"`
	IsApproved  bool      `json:"is_approved"`
}

// BlogPost is the main content document with embedded comments.
type BlogPost struct {
	ID      string `json:"id" validate:"-"`
	Title   string `json:"title" validate:"required,max=200"`
	Slug    string `json:"slug" validate:"max=200"`
	Content string `json:"content" validate:"required"`
	Excerpt string `json:"excerpt" validate:"max=300"`

	AuthorID   string   `json:"author_id" validate:"required"`
	TagIDs     []string `json:"tag_ids" validate:"-"`
	CategoryID string   `json:"category_id,omitempty" validate:"-"`

	// SEO fields
	MetaTitle       string `json:"meta_title" validate:"max=60"`
	MetaDescription string `json:"meta_description" validate:"max=160"`

	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	PublishedAt *time.Time `json:"published_at,omitempty" validate:"-"`
	CreatedAt   time.Time  `json:"created_at" validate:"-"`
	UpdatedAt   time.Time  `json:"updated_at" validate:"-"`

	ViewCount int `json:"view_count"`
	LikeCount int `json:"like_count"`

	Comments []Comment `json:"comments" validate:"-"`

	Metadata map[string]string `json:"metadata,omitempty" validate:"-"`
}

// Newsletter is a single subscriber record. Reactivation mutates the
// existing record instead of creating a duplicate.
type Newsletter struct {
	ID             string     `json:"id" validate:"-"`
	Email          string     `json:"email" validate:"required,email"`
	Name           string     `json:"name" validate:"max=100"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at" validate:"-"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty" validate:"-"`
}

// Session is a stored user session, keyed by its session key.
type Session struct {
	ID          string    `json:"id" validate:"-"`
	SessionKey  string    `json:"session_key" validate:"required,max=40"`
	SessionData string    `json:"session_data" validate:"required"`
	ExpireDate  time.Time `json:"expire_date" validate:"required"`
}

// SiteSettings is a singleton configuration document, lazily created
// with defaults on first access.
type SiteSettings struct {
	ID               string            `json:"id" validate:"-"`
	SiteName         string            `json:"site_name" validate:"max=100"`
	SiteDescription  string            `json:"site_description" validate:"max=300"`
	SiteURL          string            `json:"site_url" validate:"omitempty,url"`
	AdminEmail       string            `json:"admin_email" validate:"omitempty,email"`
	PostsPerPage     int               `json:"posts_per_page"`
	EnableComments   bool              `json:"enable_comments"`
	EnableNewsletter bool              `json:"enable_newsletter"`
	SocialLinks      map[string]string `json:"social_links,omitempty"`
	AnalyticsCode    string            `json:"analytics_code"`
	UpdatedAt        time.Time         `json:"updated_at" validate:"-"`
}
