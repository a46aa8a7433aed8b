package controllers

import (
	"net/http"
	"strconv"
	"time"

	"pressroom/app/models"
	"pressroom/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// PostController serves the public read-side of the blog API.
type PostController struct {
	posts    *services.PostService
	logger   zerolog.Logger
	pageSize int
}

// NewPostController creates a new PostController. pageSize is the
// default listing page size; zero or negative falls back to 10.
func NewPostController(posts *services.PostService, logger zerolog.Logger, pageSize int) *PostController {
	if pageSize < 1 {
		pageSize = defaultPageLimit
	}
	return &PostController{posts: posts, logger: logger, pageSize: pageSize}
}

// authorRef is the compact author block on a post summary.
type authorRef struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// tagRef names a tag on a serialized post.
type tagRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// categoryRef names the post's category, when it has one.
type categoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// postSummary is the listing shape: enough to render a card, no body.
type postSummary struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Excerpt      string       `json:"excerpt"`
	Author       authorRef    `json:"author"`
	PublishedAt  *time.Time   `json:"published_at"`
	ViewCount    int          `json:"view_count"`
	CommentCount int          `json:"comment_count"`
	Tags         []tagRef     `json:"tags"`
	Category     *categoryRef `json:"category"`
}

// authorDetail extends the byline with profile fields.
type authorDetail struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// commentView hides the commenter's email from the public payload.
type commentView struct {
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type seoBlock struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// postDetail is the full single-post shape, approved comments included.
type postDetail struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Content     string        `json:"content"`
	Excerpt     string        `json:"excerpt"`
	Author      authorDetail  `json:"author"`
	PublishedAt *time.Time    `json:"published_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ViewCount   int           `json:"view_count"`
	LikeCount   int           `json:"like_count"`
	Tags        []tagRef      `json:"tags"`
	Category    *categoryRef  `json:"category"`
	Comments    []commentView `json:"comments"`
	SEO         seoBlock      `json:"seo"`
}

// serializeSummary resolves the post's references and builds the
// listing shape. A dangling reference is a data error, not a 404.
func (c *PostController) serializeSummary(post *models.BlogPost) (*postSummary, error) {
	author, err := c.posts.AuthorByID(post.AuthorID)
	if err != nil {
		return nil, err
	}
	tags, err := c.posts.TagsByIDs(post.TagIDs)
	if err != nil {
		return nil, err
	}

	summary := &postSummary{
		ID:           post.ID,
		Title:        post.Title,
		Slug:         post.Slug,
		Excerpt:      post.Excerpt,
		Author:       authorRef{Username: author.Username, FullName: author.FullName()},
		PublishedAt:  post.PublishedAt,
		ViewCount:    post.ViewCount,
		CommentCount: post.CommentCount(),
		Tags:         make([]tagRef, 0, len(tags)),
	}
	for _, tag := range tags {
		summary.Tags = append(summary.Tags, tagRef{Name: tag.Name, Slug: tag.Slug})
	}
	if post.CategoryID != "" {
		category, err := c.posts.CategoryByID(post.CategoryID)
		if err != nil {
			return nil, err
		}
		summary.Category = &categoryRef{Name: category.Name, Slug: category.Slug}
	}
	return summary, nil
}

func (c *PostController) serializeSummaries(posts []*models.BlogPost) ([]*postSummary, error) {
	summaries := make([]*postSummary, 0, len(posts))
	for _, post := range posts {
		summary, err := c.serializeSummary(post)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (c *PostController) serializeDetail(post *models.BlogPost) (*postDetail, error) {
	author, err := c.posts.AuthorByID(post.AuthorID)
	if err != nil {
		return nil, err
	}
	tags, err := c.posts.TagsByIDs(post.TagIDs)
	if err != nil {
		return nil, err
	}

	detail := &postDetail{
		ID:      post.ID,
		Title:   post.Title,
		Slug:    post.Slug,
		Content: post.Content,
		Excerpt: post.Excerpt,
		Author: authorDetail{
			Username:  author.Username,
			FullName:  author.FullName(),
			Bio:       author.Bio,
			AvatarURL: author.AvatarURL,
		},
		PublishedAt: post.PublishedAt,
		UpdatedAt:   post.UpdatedAt,
		ViewCount:   post.ViewCount,
		LikeCount:   post.LikeCount,
		Tags:        make([]tagRef, 0, len(tags)),
		Comments:    make([]commentView, 0),
		SEO:         seoBlock{MetaTitle: post.MetaTitle, MetaDescription: post.MetaDescription},
	}
	for _, tag := range tags {
		detail.Tags = append(detail.Tags, tagRef{Name: tag.Name, Slug: tag.Slug})
	}
	if post.CategoryID != "" {
		category, err := c.posts.CategoryByID(post.CategoryID)
		if err != nil {
			return nil, err
		}
		detail.Category = &categoryRef{Name: category.Name, Slug: category.Slug}
	}
	for _, comment := range post.ApprovedComments() {
		detail.Comments = append(detail.Comments, commentView{
			AuthorName: comment.AuthorName,
			Content:    comment.Content,
			CreatedAt:  comment.CreatedAt,
		})
	}
	return detail, nil
}

// queryInt parses a positive integer query parameter, falling back to
// def on absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// Index handles GET /api/posts with page/limit query parameters.
func (c *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", c.pageSize)
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	result, err := c.posts.Paginate(page, limit)
	if err != nil {
		status, msg := translate(c.logger, err, "Posts not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	summaries, err := c.serializeSummaries(result.Posts)
	if err != nil {
		status, msg := translate(c.logger, err, "Posts not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"posts": summaries,
		"pagination": map[string]interface{}{
			"page":         result.Page,
			"limit":        result.Limit,
			"total":        result.Total,
			"pages":        result.Pages,
			"has_next":     result.HasNext,
			"has_previous": result.HasPrevious,
		},
	})
}

// Show handles GET /api/post/{slug}. Every successful view bumps the
// post's view counter.
func (c *PostController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := c.posts.GetBySlug(slug)
	if err != nil {
		status, msg := translate(c.logger, err, "Post not found", "Failed to fetch post")
		apiError(w, status, msg)
		return
	}
	if err := c.posts.IncrementViewCount(post); err != nil {
		c.logger.Error().Err(err).Str("slug", slug).Msg("view count update failed")
	}

	detail, err := c.serializeDetail(post)
	if err != nil {
		status, msg := translate(c.logger, err, "Post not found", "Failed to fetch post")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Related handles GET /api/post/{slug}/related.
func (c *PostController) Related(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := c.posts.GetBySlug(slug)
	if err != nil {
		status, msg := translate(c.logger, err, "Post not found", "Failed to fetch related posts")
		apiError(w, status, msg)
		return
	}
	related, err := c.posts.GetRelated(post, services.DefaultRelatedLimit)
	if err != nil {
		status, msg := translate(c.logger, err, "Post not found", "Failed to fetch related posts")
		apiError(w, status, msg)
		return
	}
	summaries, err := c.serializeSummaries(related)
	if err != nil {
		status, msg := translate(c.logger, err, "Post not found", "Failed to fetch related posts")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": summaries})
}

// ByAuthor handles GET /api/posts/author/{username}.
func (c *PostController) ByAuthor(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, posts, err := c.posts.ByAuthor(username)
	if err != nil {
		status, msg := translate(c.logger, err, "Author not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	summaries, err := c.serializeSummaries(posts)
	if err != nil {
		status, msg := translate(c.logger, err, "Author not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"author": authorDetail{
			Username:  author.Username,
			FullName:  author.FullName(),
			Bio:       author.Bio,
			AvatarURL: author.AvatarURL,
		},
		"posts": summaries,
	})
}

// ByTag handles GET /api/posts/tag/{slug}.
func (c *PostController) ByTag(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	tag, posts, err := c.posts.ByTag(slug)
	if err != nil {
		status, msg := translate(c.logger, err, "Tag not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	summaries, err := c.serializeSummaries(posts)
	if err != nil {
		status, msg := translate(c.logger, err, "Tag not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tag":   tagRef{Name: tag.Name, Slug: tag.Slug},
		"posts": summaries,
	})
}

// ByCategory handles GET /api/posts/category/{slug}.
func (c *PostController) ByCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, posts, err := c.posts.ByCategory(slug)
	if err != nil {
		status, msg := translate(c.logger, err, "Category not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	summaries, err := c.serializeSummaries(posts)
	if err != nil {
		status, msg := translate(c.logger, err, "Category not found", "Failed to fetch posts")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": categoryRef{Name: category.Name, Slug: category.Slug},
		"posts":    summaries,
	})
}

// Search handles GET /api/search?q=term.
func (c *PostController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	posts, err := c.posts.Search(query)
	if err != nil {
		status, msg := translate(c.logger, err, "Posts not found", "Search failed")
		apiError(w, status, msg)
		return
	}
	summaries, err := c.serializeSummaries(posts)
	if err != nil {
		status, msg := translate(c.logger, err, "Posts not found", "Search failed")
		apiError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":         query,
		"total_results": len(summaries),
		"posts":         summaries,
	})
}
