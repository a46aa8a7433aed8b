package services

import (
	"fmt"

	"pressroom/app/models"
	"pressroom/app/repositories"
)

const (
	// DefaultRelatedLimit is how many related posts a detail page shows.
	DefaultRelatedLimit = 3

	// candidatePoolSize caps the raw candidates pulled per related-post
	// or content-search pass before merging.
	candidatePoolSize = 10

	// searchTitleThreshold is the title-hit count below which the
	// content pass kicks in.
	searchTitleThreshold = 5
)

// PostService handles queries and business logic for blog posts
type PostService struct {
	posts      repositories.PostRepository
	authors    repositories.AuthorRepository
	tags       repositories.TagRepository
	categories repositories.CategoryRepository
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostRepository,
	authors repositories.AuthorRepository,
	tags repositories.TagRepository,
	categories repositories.CategoryRepository,
) *PostService {
	return &PostService{
		posts:      posts,
		authors:    authors,
		tags:       tags,
		categories: categories,
	}
}

// PostPage is an independent snapshot of one page of posts plus the
// pagination envelope fields.
type PostPage struct {
	Posts       []*models.BlogPost
	Page        int
	Limit       int
	Total       int
	Pages       int
	HasNext     bool
	HasPrevious bool
}

// CreatePost validates and stores a new post. Slug, excerpt and
// timestamps are filled in by the lifecycle hook on save.
func (s *PostService) CreatePost(post *models.BlogPost) error {
	if err := validatePost(post); err != nil {
		return err
	}
	if _, err := s.authors.GetByID(post.AuthorID); err != nil {
		return fmt.Errorf("author lookup: %w", err)
	}
	return s.posts.Save(post)
}

// UpdatePost validates and re-saves an existing post, preserving its
// creation time.
func (s *PostService) UpdatePost(post *models.BlogPost) error {
	if err := validatePost(post); err != nil {
		return err
	}
	existing, err := s.posts.GetByID(post.ID)
	if err != nil {
		return err
	}
	post.CreatedAt = existing.CreatedAt
	return s.posts.Save(post)
}

// GetPublished returns every published post whose publication time is
// not in the future, newest created first.
func (s *PostService) GetPublished() ([]*models.BlogPost, error) {
	return s.posts.Find(repositories.PostFilter{Published: true})
}

// GetFeatured returns published posts flagged as featured.
func (s *PostService) GetFeatured(limit int) ([]*models.BlogPost, error) {
	return s.posts.Find(repositories.PostFilter{
		Published: true,
		Featured:  true,
		SortBy:    repositories.SortPublishedAt,
		Limit:     limit,
	})
}

// Paginate returns one page of published posts ordered by publication
// time, newest first, with the envelope totals. Page and limit are
// taken as given; API callers clamp them.
func (s *PostService) Paginate(page, limit int) (*PostPage, error) {
	filter := repositories.PostFilter{
		Published: true,
		SortBy:    repositories.SortPublishedAt,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	}

	posts, err := s.posts.Find(filter)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.Count(filter)
	if err != nil {
		return nil, err
	}

	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &PostPage{
		Posts:       posts,
		Page:        page,
		Limit:       limit,
		Total:       total,
		Pages:       pages,
		HasNext:     (page-1)*limit+limit < total,
		HasPrevious: page > 1,
	}, nil
}

// GetBySlug returns a published post by slug. Drafts are invisible:
// an unpublished slug reads as not found.
func (s *PostService) GetBySlug(slug string) (*models.BlogPost, error) {
	post, err := s.posts.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

// ByAuthor returns the author and their published posts, newest
// publication first.
func (s *PostService) ByAuthor(username string) (*models.Author, []*models.BlogPost, error) {
	author, err := s.authors.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.Find(repositories.PostFilter{
		Published: true,
		AuthorID:  author.ID,
		SortBy:    repositories.SortPublishedAt,
	})
	if err != nil {
		return nil, nil, err
	}
	return author, posts, nil
}

// ByTag returns the tag and its published posts.
func (s *PostService) ByTag(slug string) (*models.Tag, []*models.BlogPost, error) {
	tag, err := s.tags.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.Find(repositories.PostFilter{
		Published: true,
		TagID:     tag.ID,
		SortBy:    repositories.SortPublishedAt,
	})
	if err != nil {
		return nil, nil, err
	}
	return tag, posts, nil
}

// ByCategory returns the category and its published posts.
func (s *PostService) ByCategory(slug string) (*models.Category, []*models.BlogPost, error) {
	category, err := s.categories.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.Find(repositories.PostFilter{
		Published:  true,
		CategoryID: category.ID,
		SortBy:     repositories.SortPublishedAt,
	})
	if err != nil {
		return nil, nil, err
	}
	return category, posts, nil
}

// Search matches the query as a case-insensitive substring, titles
// first. When titles yield fewer than five hits, a second pass over
// content (capped at ten raw candidates) fills in, deduplicated by id.
func (s *PostService) Search(query string) ([]*models.BlogPost, error) {
	if query == "" {
		return []*models.BlogPost{}, nil
	}

	results, err := s.posts.Find(repositories.PostFilter{
		Published:     true,
		TitleContains: query,
		SortBy:        repositories.SortPublishedAt,
	})
	if err != nil {
		return nil, err
	}

	if len(results) < searchTitleThreshold {
		contentHits, err := s.posts.Find(repositories.PostFilter{
			Published:       true,
			ContentContains: query,
			SortBy:          repositories.SortPublishedAt,
			Limit:           candidatePoolSize,
		})
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool, len(results))
		for _, post := range results {
			seen[post.ID] = true
		}
		for _, post := range contentHits {
			if !seen[post.ID] {
				results = append(results, post)
			}
		}
	}

	return results, nil
}

// GetRelated selects up to limit related posts: shared-tag matches
// first, then the author's other posts to fill the remainder. The
// source post and duplicates are always excluded; a short result is
// not an error.
func (s *PostService) GetRelated(post *models.BlogPost, limit int) ([]*models.BlogPost, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	var related []*models.BlogPost
	seen := map[string]bool{post.ID: true}

	if len(post.TagIDs) > 0 {
		tagPosts, err := s.posts.Find(repositories.PostFilter{
			Published: true,
			AnyTagID:  post.TagIDs,
			Limit:     candidatePoolSize,
		})
		if err != nil {
			return nil, err
		}
		for _, candidate := range tagPosts {
			if len(related) >= limit {
				break
			}
			if !seen[candidate.ID] {
				seen[candidate.ID] = true
				related = append(related, candidate)
			}
		}
	}

	if len(related) < limit {
		authorPosts, err := s.posts.Find(repositories.PostFilter{
			Published: true,
			AuthorID:  post.AuthorID,
			Limit:     candidatePoolSize,
		})
		if err != nil {
			return nil, err
		}
		for _, candidate := range authorPosts {
			if len(related) >= limit {
				break
			}
			if !seen[candidate.ID] {
				seen[candidate.ID] = true
				related = append(related, candidate)
			}
		}
	}

	return related, nil
}

// AuthorByID resolves a post's owning author reference.
func (s *PostService) AuthorByID(id string) (*models.Author, error) {
	return s.authors.GetByID(id)
}

// TagsByIDs resolves a post's tag references, preserving their order.
func (s *PostService) TagsByIDs(ids []string) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, len(ids))
	for _, id := range ids {
		tag, err := s.tags.GetByID(id)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CategoryByID resolves a post's optional category reference.
func (s *PostService) CategoryByID(id string) (*models.Category, error) {
	return s.categories.GetByID(id)
}

// IncrementViewCount bumps the view counter via a full post re-save.
// Concurrent requests to the same post can lose increments; that
// last-writer-wins behavior is accepted for this workload.
func (s *PostService) IncrementViewCount(post *models.BlogPost) error {
	post.ViewCount++
	return s.posts.Save(post)
}

// validatePost validates a post's fields
func validatePost(post *models.BlogPost) error {
	if post.Title == "" {
		return requiredField("title")
	}
	if len(post.Title) > 200 {
		return &ValidationError{Field: "title", Message: "title is too long (maximum 200 characters)"}
	}
	if post.Content == "" {
		return requiredField("content")
	}
	if post.AuthorID == "" {
		return requiredField("author_id")
	}
	return nil
}
