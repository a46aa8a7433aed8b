package repositories

import (
	"sort"
	"strings"
	"time"

	"pressroom/app/models"
)

// Sort fields understood by PostFilter. An empty SortBy falls back to
// the collection default, created_at descending.
const (
	SortCreatedAt   = "created_at"
	SortPublishedAt = "published_at"
	SortViewCount   = "view_count"
)

// PostFilter describes an equality/substring query over the post
// collection with sorting and offset/limit slicing. The zero value
// matches everything in default order.
type PostFilter struct {
	// Published restricts to is_published posts whose published_at is
	// not in the future.
	Published bool
	Featured  bool

	AuthorID   string
	TagID      string
	CategoryID string

	// AnyTagID matches posts carrying at least one of the given tags.
	AnyTagID []string

	// Case-insensitive substring matches.
	TitleContains   string
	ContentContains string

	SortBy    string
	Ascending bool

	Offset int
	Limit  int // 0 means no limit
}

func (f PostFilter) matches(post *models.BlogPost, now time.Time) bool {
	if f.Published {
		if !post.IsPublished || post.PublishedAt == nil || post.PublishedAt.After(now) {
			return false
		}
	}
	if f.Featured && !post.IsFeatured {
		return false
	}
	if f.AuthorID != "" && post.AuthorID != f.AuthorID {
		return false
	}
	if f.TagID != "" && !post.HasTag(f.TagID) {
		return false
	}
	if len(f.AnyTagID) > 0 {
		overlap := false
		for _, id := range f.AnyTagID {
			if post.HasTag(id) {
				overlap = true
				break
			}
		}
		if !overlap {
			return false
		}
	}
	if f.CategoryID != "" && post.CategoryID != f.CategoryID {
		return false
	}
	if f.TitleContains != "" &&
		!strings.Contains(strings.ToLower(post.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	if f.ContentContains != "" &&
		!strings.Contains(strings.ToLower(post.Content), strings.ToLower(f.ContentContains)) {
		return false
	}
	return true
}

func (f PostFilter) sortPosts(posts []*models.BlogPost) {
	field := f.SortBy
	if field == "" {
		field = SortCreatedAt
	}

	less := func(a, b *models.BlogPost) bool {
		switch field {
		case SortPublishedAt:
			return publishTime(a).Before(publishTime(b))
		case SortViewCount:
			return a.ViewCount < b.ViewCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if f.Ascending {
			return less(posts[i], posts[j])
		}
		return less(posts[j], posts[i])
	})
}

// publishTime treats unpublished posts as the zero time so they sort
// behind every published post in descending order.
func publishTime(p *models.BlogPost) time.Time {
	if p.PublishedAt == nil {
		return time.Time{}
	}
	return *p.PublishedAt
}

func (f PostFilter) slice(posts []*models.BlogPost) []*models.BlogPost {
	if f.Offset >= len(posts) {
		return []*models.BlogPost{}
	}
	posts = posts[f.Offset:]
	if f.Limit > 0 && f.Limit < len(posts) {
		posts = posts[:f.Limit]
	}
	return posts
}
