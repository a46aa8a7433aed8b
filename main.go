package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"pressroom/app/repositories"
	"pressroom/app/routes"
	"pressroom/app/services"
	"pressroom/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("pressroom version %s\n", cliVersion)
	case "serve":
		serve()
	case "createsuperuser":
		createSuperuser()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func openDB(cfg *config.Config, logger zerolog.Logger) *badger.DB {
	opts := badger.DefaultOptions(cfg.DBPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	return db
}

func serve() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	db := openDB(cfg, logger)
	defer db.Close()

	router := routes.SetupRoutes(db, logger, cfg.PostsPerPage)

	logger.Info().Str("addr", cfg.Addr).Msg("starting blog service")
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func createSuperuser() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: pressroom createsuperuser <username> <email> <password>")
		os.Exit(1)
	}
	username, email, password := os.Args[2], os.Args[3], os.Args[4]

	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	db := openDB(cfg, logger)
	defer db.Close()

	users := repositories.NewBadgerUserRepository(db)
	authors := repositories.NewBadgerAuthorRepository(db)
	userService := services.NewUserService(users, authors)

	user, err := userService.CreateSuperuser(username, email, password)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create superuser")
	}
	if _, err := userService.CreateAuthor(user); err != nil {
		logger.Fatal().Err(err).Msg("failed to create author profile")
	}
	fmt.Printf("Superuser %q created.\n", user.Username)
}

func printHelp() {
	helpText := `Usage: pressroom <command> [options]
Commands:
  help                                      Display this help message.
  version                                   Show version information.
  serve                                     Run the blog API server.
  createsuperuser <username> <email> <pw>   Create an admin user with an author profile.

Environment:
  ADDR            Listen address (default :8080)
  DB_PATH         Badger database directory (default data/pressroom)
  POSTS_PER_PAGE  Default page size for listings (default 10)
  LOG_LEVEL       zerolog level (default info)
`
	fmt.Println(helpText)
}
