package repositories

import (
	"fmt"
	"testing"
	"time"

	"pressroom/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSaveAssignsIdentityAndSlug(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	post := &models.BlogPost{Title: "Hello World", Content: "body", AuthorID: "a1"}
	require.NoError(t, repo.Save(post))

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "hello-world", post.Slug)

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got.Title)

	bySlug, err := repo.GetBySlug("hello-world")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)
}

func TestPostSaveRejectsEmptyDerivedSlug(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	// A punctuation-only title slugifies to nothing; the save must
	// fail instead of storing a post with a blank lookup key.
	post := &models.BlogPost{Title: "!!!", Content: "body", AuthorID: "a1"}
	assert.ErrorIs(t, repo.Save(post), ErrEmptySlug)

	count, err := repo.Count(PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPostSlugCollisionFailsHard(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	first := &models.BlogPost{Title: "Same Title", Content: "one", AuthorID: "a1"}
	require.NoError(t, repo.Save(first))

	second := &models.BlogPost{Title: "Same Title", Content: "two", AuthorID: "a2"}
	err := repo.Save(second)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// The failed write must not have left a document behind.
	count, err := repo.Count(PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostSlugChangeRelocatesIndex(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	post := &models.BlogPost{Title: "Original", Content: "body", AuthorID: "a1"}
	require.NoError(t, repo.Save(post))

	post.Slug = "renamed"
	require.NoError(t, repo.Save(post))

	_, err := repo.GetBySlug("original")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.GetBySlug("renamed")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestPostFindPublishedFilter(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	published := &models.BlogPost{Title: "Published", Content: "body", AuthorID: "a1", IsPublished: true}
	require.NoError(t, repo.Save(published))

	draft := &models.BlogPost{Title: "Draft", Content: "body", AuthorID: "a1"}
	require.NoError(t, repo.Save(draft))

	future := &models.BlogPost{Title: "Scheduled", Content: "body", AuthorID: "a1", IsPublished: true}
	later := time.Now().Add(time.Hour)
	future.PublishedAt = &later
	require.NoError(t, repo.Save(future))

	posts, err := repo.Find(PostFilter{Published: true})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Published", posts[0].Title)
}

func TestPostFindFilters(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	seed := []*models.BlogPost{
		{Title: "Go Basics", Content: "learning go", AuthorID: "a1", TagIDs: []string{"t1"}, CategoryID: "c1", IsPublished: true},
		{Title: "Go Advanced", Content: "channels everywhere", AuthorID: "a1", TagIDs: []string{"t2"}, IsPublished: true, IsFeatured: true},
		{Title: "Cooking", Content: "go is also a word here", AuthorID: "a2", TagIDs: []string{"t1"}, IsPublished: true},
	}
	for _, p := range seed {
		require.NoError(t, repo.Save(p))
	}

	byAuthor, err := repo.Find(PostFilter{Published: true, AuthorID: "a2"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Cooking", byAuthor[0].Title)

	byTag, err := repo.Find(PostFilter{Published: true, TagID: "t1"})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	byCategory, err := repo.Find(PostFilter{Published: true, CategoryID: "c1"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Go Basics", byCategory[0].Title)

	featured, err := repo.Find(PostFilter{Published: true, Featured: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Go Advanced", featured[0].Title)

	byTitle, err := repo.Find(PostFilter{Published: true, TitleContains: "go"})
	require.NoError(t, err)
	assert.Len(t, byTitle, 2, "title match is case-insensitive substring")

	byContent, err := repo.Find(PostFilter{Published: true, ContentContains: "GO IS"})
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "Cooking", byContent[0].Title)
}

func TestPostFindSortAndSlice(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	for i := 0; i < 5; i++ {
		post := &models.BlogPost{
			Title:     fmt.Sprintf("Post %d", i),
			Content:   "body",
			AuthorID:  "a1",
			ViewCount: i,
		}
		require.NoError(t, repo.Save(post))
		time.Sleep(2 * time.Millisecond) // distinct created_at per post
	}

	// Default order is created_at descending.
	posts, err := repo.Find(PostFilter{})
	require.NoError(t, err)
	require.Len(t, posts, 5)
	assert.Equal(t, "Post 4", posts[0].Title)
	assert.Equal(t, "Post 0", posts[4].Title)

	// Offset/limit slices the sorted snapshot; Count ignores both.
	page, err := repo.Find(PostFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Post 2", page[0].Title)
	assert.Equal(t, "Post 1", page[1].Title)

	total, err := repo.Count(PostFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	// Offset past the end yields an empty page, not an error.
	empty, err := repo.Find(PostFilter{Offset: 99, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)

	popular, err := repo.Find(PostFilter{SortBy: SortViewCount, Limit: 1})
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, 4, popular[0].ViewCount)
}

func TestPostDeleteReleasesSlug(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	post := &models.BlogPost{Title: "Ephemeral", Content: "body", AuthorID: "a1"}
	require.NoError(t, repo.Save(post))
	require.NoError(t, repo.Delete(post.ID))

	_, err := repo.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The slug is free again for a new post.
	again := &models.BlogPost{Title: "Ephemeral", Content: "body", AuthorID: "a1"}
	assert.NoError(t, repo.Save(again))
}

func TestPostGetMissing(t *testing.T) {
	repo := NewBadgerPostRepository(openTestDB(t))

	_, err := repo.GetByID("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetBySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
