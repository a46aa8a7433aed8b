package services

import (
	"testing"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// testEnv wires every service over a throwaway Badger database so the
// service tests exercise the same store semantics production sees.
type testEnv struct {
	posts      *repositories.BadgerPostRepository
	authors    *repositories.BadgerAuthorRepository
	tags       *repositories.BadgerTagRepository
	categories *repositories.BadgerCategoryRepository
	subs       *repositories.BadgerNewsletterRepository
	users      *repositories.BadgerUserRepository

	postService       *PostService
	commentService    *CommentService
	newsletterService *NewsletterService
	userService       *UserService
	statsService      *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	opts := badger.DefaultOptions(t.TempDir()).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		posts:      repositories.NewBadgerPostRepository(db),
		authors:    repositories.NewBadgerAuthorRepository(db),
		tags:       repositories.NewBadgerTagRepository(db),
		categories: repositories.NewBadgerCategoryRepository(db),
		subs:       repositories.NewBadgerNewsletterRepository(db),
		users:      repositories.NewBadgerUserRepository(db),
	}
	env.postService = NewPostService(env.posts, env.authors, env.tags, env.categories)
	env.commentService = NewCommentService(env.posts)
	env.newsletterService = NewNewsletterService(env.subs)
	env.userService = NewUserService(env.users, env.authors)
	env.statsService = NewStatsService(env.posts, env.authors, env.tags, env.categories, env.subs)
	return env
}

func (env *testEnv) createAuthor(t *testing.T, username string) *models.Author {
	t.Helper()
	author := &models.Author{
		UserID:   "user-" + username,
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, env.authors.Save(author))
	return author
}

// publishPost saves a published post and sleeps briefly so successive
// posts get distinct publication times for ordering assertions.
func (env *testEnv) publishPost(t *testing.T, post *models.BlogPost) *models.BlogPost {
	t.Helper()
	post.IsPublished = true
	if post.Content == "" {
		post.Content = "body"
	}
	require.NoError(t, env.posts.Save(post))
	time.Sleep(2 * time.Millisecond)
	return post
}
