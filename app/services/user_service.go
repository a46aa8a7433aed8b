package services

import (
	"errors"
	"time"

	"pressroom/app/models"
	"pressroom/app/repositories"
)

// UserService handles credential holders and their author profiles
type UserService struct {
	users   repositories.UserRepository
	authors repositories.AuthorRepository
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository, authors repositories.AuthorRepository) *UserService {
	return &UserService{users: users, authors: authors}
}

// CreateUser creates and stores a regular user with a hashed password.
func (s *UserService) CreateUser(username, email, password string) (*models.User, error) {
	if username == "" {
		return nil, requiredField("username")
	}
	if email == "" {
		return nil, requiredField("email")
	}
	if password == "" {
		return nil, requiredField("password")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSuperuser creates a user with staff and superuser flags set.
func (s *UserService) CreateSuperuser(username, email, password string) (*models.User, error) {
	user, err := s.CreateUser(username, email, password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials and stamps last_login on success.
// Lookup misses and bad passwords both read as invalid credentials.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateAuthor materializes the byline profile for a user. The copy is
// taken once; later user edits do not propagate to the author.
func (s *UserService) CreateAuthor(user *models.User) (*models.Author, error) {
	author := models.AuthorFromUser(user)
	if err := s.authors.Save(author); err != nil {
		return nil, err
	}
	return author, nil
}
