package services

import (
	"errors"
	"strings"

	"pressroom/app/models"
	"pressroom/app/repositories"
)

// NewsletterService handles subscriptions
type NewsletterService struct {
	subscribers repositories.NewsletterRepository
}

// NewNewsletterService creates a new NewsletterService
func NewNewsletterService(subscribers repositories.NewsletterRepository) *NewsletterService {
	return &NewsletterService{subscribers: subscribers}
}

// Subscribe adds a subscriber or reactivates a lapsed one. Signing up
// an address that is already active is a conflict; a lapsed address is
// reactivated in place so no duplicate record is created. The bool
// reports whether an existing subscription was reactivated.
func (s *NewsletterService) Subscribe(email, name string) (*models.Newsletter, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, false, requiredField("email")
	}

	subscriber, err := s.subscribers.GetByEmail(email)
	switch {
	case err == nil:
		if subscriber.IsActive {
			return nil, false, conflictf("this email is already subscribed to our newsletter")
		}
		subscriber.Reactivate()
		if err := s.subscribers.Save(subscriber); err != nil {
			return nil, false, err
		}
		return subscriber, true, nil

	case errors.Is(err, repositories.ErrNotFound):
		subscriber = &models.Newsletter{Email: email, Name: name, IsActive: true}
		if err := s.subscribers.Save(subscriber); err != nil {
			return nil, false, err
		}
		return subscriber, false, nil

	default:
		return nil, false, err
	}
}

// Unsubscribe deactivates the subscription, stamping the time.
func (s *NewsletterService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return requiredField("email")
	}

	subscriber, err := s.subscribers.GetByEmail(email)
	if err != nil {
		return err
	}
	subscriber.Deactivate()
	return s.subscribers.Save(subscriber)
}
