package services

import (
	"pressroom/app/models"
	"pressroom/app/repositories"
)

// DashboardStats aggregates collection totals for the stats dashboard.
type DashboardStats struct {
	TotalPosts            int                `json:"total_posts"`
	PublishedPosts        int                `json:"published_posts"`
	TotalAuthors          int                `json:"total_authors"`
	TotalTags             int                `json:"total_tags"`
	TotalCategories       int                `json:"total_categories"`
	NewsletterSubscribers int                `json:"newsletter_subscribers"`
	TotalViews            int                `json:"total_views"`
	RecentPosts           []*models.BlogPost `json:"recent_posts"`
	PopularPosts          []*models.BlogPost `json:"popular_posts"`
}

// StatsService computes the dashboard aggregates
type StatsService struct {
	posts       repositories.PostRepository
	authors     repositories.AuthorRepository
	tags        repositories.TagRepository
	categories  repositories.CategoryRepository
	subscribers repositories.NewsletterRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	posts repositories.PostRepository,
	authors repositories.AuthorRepository,
	tags repositories.TagRepository,
	categories repositories.CategoryRepository,
	subscribers repositories.NewsletterRepository,
) *StatsService {
	return &StatsService{
		posts:       posts,
		authors:     authors,
		tags:        tags,
		categories:  categories,
		subscribers: subscribers,
	}
}

// Collect gathers the dashboard numbers. Each count is an independent
// query; the dashboard tolerates slight skew between them.
func (s *StatsService) Collect() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalPosts, err = s.posts.Count(repositories.PostFilter{}); err != nil {
		return nil, err
	}
	if stats.PublishedPosts, err = s.posts.Count(repositories.PostFilter{Published: true}); err != nil {
		return nil, err
	}
	if stats.TotalAuthors, err = s.authors.Count(); err != nil {
		return nil, err
	}
	if stats.TotalTags, err = s.tags.Count(); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.categories.Count(); err != nil {
		return nil, err
	}
	if stats.NewsletterSubscribers, err = s.subscribers.CountActive(); err != nil {
		return nil, err
	}

	all, err := s.posts.Find(repositories.PostFilter{})
	if err != nil {
		return nil, err
	}
	for _, post := range all {
		stats.TotalViews += post.ViewCount
	}

	if stats.RecentPosts, err = s.posts.Find(repositories.PostFilter{Limit: 5}); err != nil {
		return nil, err
	}
	stats.PopularPosts, err = s.posts.Find(repositories.PostFilter{
		Published: true,
		SortBy:    repositories.SortViewCount,
		Limit:     5,
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
