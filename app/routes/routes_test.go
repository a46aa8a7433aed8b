package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router     *mux.Router
	posts      repositories.PostRepository
	authors    repositories.AuthorRepository
	tags       repositories.TagRepository
	categories repositories.CategoryRepository
	newsletter *services.NewsletterService
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir()).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	subscribers := repositories.NewBadgerNewsletterRepository(db)
	return &testEnv{
		router:     SetupRoutes(db, zerolog.Nop(), 10),
		posts:      repositories.NewBadgerPostRepository(db),
		authors:    repositories.NewBadgerAuthorRepository(db),
		tags:       repositories.NewBadgerTagRepository(db),
		categories: repositories.NewBadgerCategoryRepository(db),
		newsletter: services.NewNewsletterService(subscribers),
	}
}

func (env *testEnv) get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func (env *testEnv) postJSON(t *testing.T, path, payload string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func (env *testEnv) createAuthor(t *testing.T, username string) *models.Author {
	t.Helper()
	author := &models.Author{
		UserID:    "user-" + username,
		Username:  username,
		Email:     username + "@example.com",
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Writer",
		IsActive:  true,
	}
	require.NoError(t, env.authors.Save(author))
	return author
}

func (env *testEnv) publishPost(t *testing.T, post *models.BlogPost) *models.BlogPost {
	t.Helper()
	if post.Content == "" {
		post.Content = "Body of " + post.Title
	}
	post.IsPublished = true
	require.NoError(t, env.posts.Save(post))
	// Publish times must differ for a stable newest-first order.
	time.Sleep(2 * time.Millisecond)
	return post
}

func TestPostsIndexPagination(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	for _, title := range []string{"First", "Second", "Third"} {
		env.publishPost(t, &models.BlogPost{Title: title, AuthorID: author.ID})
	}

	w, body := env.get(t, "/api/posts?page=1&limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	posts := body["posts"].([]interface{})
	require.Len(t, posts, 2)

	// Newest publication first.
	first := posts[0].(map[string]interface{})
	assert.Equal(t, "Third", first["title"])
	assert.Equal(t, "third", first["slug"])

	authorBlock := first["author"].(map[string]interface{})
	assert.Equal(t, "alice", authorBlock["username"])
	assert.Equal(t, "Alice Writer", authorBlock["full_name"])

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, 2, pagination["limit"])
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 2, pagination["pages"])
	assert.Equal(t, true, pagination["has_next"])
	assert.Equal(t, false, pagination["has_previous"])
}

func TestPostsIndexClampsParams(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	env.publishPost(t, &models.BlogPost{Title: "Only", AuthorID: author.ID})

	w, body := env.get(t, "/api/posts?page=0&limit=9999")
	require.Equal(t, http.StatusOK, w.Code)

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, 50, pagination["limit"])
}

func TestPostDetailCountsViews(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	tag := &models.Tag{Name: "Go Tips"}
	require.NoError(t, env.tags.Save(tag))
	category := &models.Category{Name: "Engineering"}
	require.NoError(t, env.categories.Save(category))

	post := &models.BlogPost{
		Title:      "Viewed",
		AuthorID:   author.ID,
		TagIDs:     []string{tag.ID},
		CategoryID: category.ID,
	}
	env.publishPost(t, post)
	comment := post.AddComment("Jo", "jo@x.com", "Visible")
	comment.IsApproved = true
	post.AddComment("Sam", "sam@x.com", "Pending")
	require.NoError(t, env.posts.Save(post))

	w, body := env.get(t, "/api/post/viewed")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Viewed", body["title"])
	assert.Equal(t, "Body of Viewed", body["content"])

	tags := body["tags"].([]interface{})
	require.Len(t, tags, 1)
	assert.Equal(t, "go-tips", tags[0].(map[string]interface{})["slug"])
	assert.Equal(t, "engineering", body["category"].(map[string]interface{})["slug"])

	// Only the approved comment is exposed, without the email.
	comments := body["comments"].([]interface{})
	require.Len(t, comments, 1)
	first := comments[0].(map[string]interface{})
	assert.Equal(t, "Jo", first["author_name"])
	assert.NotContains(t, first, "author_email")

	// Each detail fetch bumps the view counter before serializing, so
	// the response already reflects the viewer's own visit.
	assert.EqualValues(t, 1, body["view_count"])

	_, body = env.get(t, "/api/post/viewed")
	assert.EqualValues(t, 2, body["view_count"])

	stored, err := env.posts.GetBySlug("viewed")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ViewCount)
}

func TestPostDetailNotFound(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")

	// Drafts read as missing.
	require.NoError(t, env.posts.Save(&models.BlogPost{Title: "Draft", Content: "x", AuthorID: author.ID}))

	for _, slug := range []string{"nowhere", "draft"} {
		w, body := env.get(t, "/api/post/"+slug)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Post not found", body["error"])
	}
}

func TestRelatedPosts(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	tag := &models.Tag{Name: "Shared"}
	require.NoError(t, env.tags.Save(tag))

	source := env.publishPost(t, &models.BlogPost{Title: "Source", AuthorID: author.ID, TagIDs: []string{tag.ID}})
	env.publishPost(t, &models.BlogPost{Title: "Sibling", AuthorID: author.ID, TagIDs: []string{tag.ID}})
	env.publishPost(t, &models.BlogPost{Title: "Same Author", AuthorID: author.ID})

	w, body := env.get(t, "/api/post/"+source.Slug+"/related")
	require.Equal(t, http.StatusOK, w.Code)

	posts := body["posts"].([]interface{})
	require.Len(t, posts, 2)
	titles := []string{
		posts[0].(map[string]interface{})["title"].(string),
		posts[1].(map[string]interface{})["title"].(string),
	}
	// Tag matches come first, the author's other posts fill in, and the
	// source post itself never appears.
	assert.Equal(t, "Sibling", titles[0])
	assert.Equal(t, "Same Author", titles[1])
}

func TestFilteredListings(t *testing.T) {
	env := setupTestServer(t)
	alice := env.createAuthor(t, "alice")
	bob := env.createAuthor(t, "bob")
	tag := &models.Tag{Name: "Go"}
	require.NoError(t, env.tags.Save(tag))
	category := &models.Category{Name: "News"}
	require.NoError(t, env.categories.Save(category))

	env.publishPost(t, &models.BlogPost{Title: "Alices Post", AuthorID: alice.ID, TagIDs: []string{tag.ID}})
	env.publishPost(t, &models.BlogPost{Title: "Bobs Post", AuthorID: bob.ID, CategoryID: category.ID})

	w, body := env.get(t, "/api/posts/author/alice")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", body["author"].(map[string]interface{})["username"])
	require.Len(t, body["posts"].([]interface{}), 1)

	w, body = env.get(t, "/api/posts/tag/go")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Go", body["tag"].(map[string]interface{})["name"])
	require.Len(t, body["posts"].([]interface{}), 1)

	w, body = env.get(t, "/api/posts/category/news")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "News", body["category"].(map[string]interface{})["name"])
	require.Len(t, body["posts"].([]interface{}), 1)

	w, body = env.get(t, "/api/posts/author/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Author not found", body["error"])
}

func TestSearch(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	env.publishPost(t, &models.BlogPost{Title: "Badger Internals", AuthorID: author.ID})
	env.publishPost(t, &models.BlogPost{Title: "Unrelated", Content: "all about badger compaction", AuthorID: author.ID})
	env.publishPost(t, &models.BlogPost{Title: "Nothing Here", AuthorID: author.ID})

	w, body := env.get(t, "/api/search?q=badger")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "badger", body["query"])
	assert.EqualValues(t, 2, body["total_results"])

	posts := body["posts"].([]interface{})
	require.Len(t, posts, 2)
	// Title hits rank ahead of content hits.
	assert.Equal(t, "Badger Internals", posts[0].(map[string]interface{})["title"])
}

func TestCommentSubmission(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	env.publishPost(t, &models.BlogPost{Title: "Open Thread", AuthorID: author.ID})

	w, body := env.postJSON(t, "/api/post/open-thread/comment",
		`{"author_name":"Jo","author_email":"jo@x.com","content":"Nice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Comment added successfully! It will be visible after approval.", body["message"])

	// The comment is stored unapproved.
	post, err := env.posts.GetBySlug("open-thread")
	require.NoError(t, err)
	require.Len(t, post.Comments, 1)
	assert.False(t, post.Comments[0].IsApproved)
}

func TestCommentSubmissionViaForm(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	env.publishPost(t, &models.BlogPost{Title: "Open Thread", AuthorID: author.ID})

	form := "author_name=Jo&author_email=jo%40x.com&content=Nice"
	req := httptest.NewRequest("POST", "/api/post/open-thread/comment", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCommentValidationErrorShape(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	env.publishPost(t, &models.BlogPost{Title: "Open Thread", AuthorID: author.ID})

	w, body := env.postJSON(t, "/api/post/open-thread/comment",
		`{"author_email":"jo@x.com","content":"Nice"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Author Name is required", body["message"])

	w, body = env.postJSON(t, "/api/post/nowhere/comment",
		`{"author_name":"Jo","author_email":"jo@x.com","content":"Nice"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", body["message"])
}

func TestNewsletterSignupLifecycle(t *testing.T) {
	env := setupTestServer(t)

	w, body := env.postJSON(t, "/api/newsletter/signup", `{"email":"jo@x.com","name":"Jo"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Thank you for subscribing to our newsletter!", body["message"])

	// A second active signup is rejected.
	w, body = env.postJSON(t, "/api/newsletter/signup", `{"email":"jo@x.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "this email is already subscribed to our newsletter", body["message"])

	// Lapsed subscribers come back with a different message.
	require.NoError(t, env.newsletter.Unsubscribe("jo@x.com"))
	w, body = env.postJSON(t, "/api/newsletter/signup", `{"email":"jo@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Welcome back! Your newsletter subscription has been reactivated.", body["message"])
}

func TestNewsletterSignupRequiresEmail(t *testing.T) {
	env := setupTestServer(t)

	w, body := env.postJSON(t, "/api/newsletter/signup", `{"name":"Jo"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required", body["message"])
}

func TestDashboard(t *testing.T) {
	env := setupTestServer(t)
	author := env.createAuthor(t, "alice")
	env.publishPost(t, &models.BlogPost{Title: "Live", AuthorID: author.ID})
	require.NoError(t, env.posts.Save(&models.BlogPost{Title: "Draft", Content: "x", AuthorID: author.ID}))

	w, body := env.get(t, "/api/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["total_posts"])
	assert.EqualValues(t, 1, body["published_posts"])
	assert.EqualValues(t, 1, body["total_authors"])
}

func TestHealth(t *testing.T) {
	env := setupTestServer(t)

	w, body := env.get(t, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRoute(t *testing.T) {
	env := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
