package routes

import (
	"net/http"

	"pressroom/app/controllers"
	"pressroom/app/middleware"
	"pressroom/app/repositories"
	"pressroom/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes wires repositories, services and controllers over the
// given Badger DB and returns the configured router. postsPerPage is
// the default listing page size.
func SetupRoutes(db *badger.DB, logger zerolog.Logger, postsPerPage int) *mux.Router {
	posts := repositories.NewBadgerPostRepository(db)
	authors := repositories.NewBadgerAuthorRepository(db)
	tags := repositories.NewBadgerTagRepository(db)
	categories := repositories.NewBadgerCategoryRepository(db)
	subscribers := repositories.NewBadgerNewsletterRepository(db)

	postService := services.NewPostService(posts, authors, tags, categories)
	commentService := services.NewCommentService(posts)
	newsletterService := services.NewNewsletterService(subscribers)
	statsService := services.NewStatsService(posts, authors, tags, categories, subscribers)

	postController := controllers.NewPostController(postService, logger, postsPerPage)
	commentController := controllers.NewCommentController(commentService, logger)
	newsletterController := controllers.NewNewsletterController(newsletterService, logger)
	statsController := controllers.NewStatsController(statsService, logger)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON)

	api := router.PathPrefix("/api").Subrouter()

	// Post listings and detail
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/post/{slug}", postController.Show).Methods("GET")
	api.HandleFunc("/post/{slug}/related", postController.Related).Methods("GET")
	api.HandleFunc("/post/{slug}/comment", commentController.Create).Methods("POST")

	// Filtered listings
	api.HandleFunc("/posts/author/{username}", postController.ByAuthor).Methods("GET")
	api.HandleFunc("/posts/tag/{slug}", postController.ByTag).Methods("GET")
	api.HandleFunc("/posts/category/{slug}", postController.ByCategory).Methods("GET")

	// Search
	api.HandleFunc("/search", postController.Search).Methods("GET")

	// Newsletter
	api.HandleFunc("/newsletter/signup", newsletterController.Signup).Methods("POST")

	// Dashboard
	api.HandleFunc("/dashboard", statsController.Dashboard).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return router
}
