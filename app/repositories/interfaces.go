package repositories

import "pressroom/app/models"

// PostRepository defines the interface for blog post data access
type PostRepository interface {
	Save(post *models.BlogPost) error
	GetByID(id string) (*models.BlogPost, error)
	GetBySlug(slug string) (*models.BlogPost, error)
	Find(filter PostFilter) ([]*models.BlogPost, error)
	Count(filter PostFilter) (int, error)
	Delete(id string) error
}

// AuthorRepository defines the interface for author data access
type AuthorRepository interface {
	Save(author *models.Author) error
	GetByID(id string) (*models.Author, error)
	GetByUsername(username string) (*models.Author, error)
	List() ([]*models.Author, error)
	Count() (int, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Save(tag *models.Tag) error
	GetByID(id string) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	List() ([]*models.Tag, error)
	Count() (int, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Save(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]*models.Category, error)
	Count() (int, error)
}

// NewsletterRepository defines the interface for subscriber data access
type NewsletterRepository interface {
	Save(subscriber *models.Newsletter) error
	GetByEmail(email string) (*models.Newsletter, error)
	CountActive() (int, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Save(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Save(session *models.Session) error
	GetByKey(sessionKey string) (*models.Session, error)
	DeleteExpired() (int, error)
}

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	Get() (*models.SiteSettings, error)
	Save(settings *models.SiteSettings) error
}
