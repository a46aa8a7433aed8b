package controllers

import (
	"net/http"

	"pressroom/app/services"

	"github.com/rs/zerolog"
)

// NewsletterController handles newsletter signups.
type NewsletterController struct {
	newsletter *services.NewsletterService
	logger     zerolog.Logger
}

// NewNewsletterController creates a new NewsletterController
func NewNewsletterController(newsletter *services.NewsletterService, logger zerolog.Logger) *NewsletterController {
	return &NewsletterController{newsletter: newsletter, logger: logger}
}

// Signup handles POST /api/newsletter/signup. An already-active email
// is rejected; a lapsed one is quietly reactivated.
func (c *NewsletterController) Signup(w http.ResponseWriter, r *http.Request) {
	data, err := decodeBody(r)
	if err != nil {
		statusError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, reactivated, err := c.newsletter.Subscribe(data["email"], data["name"])
	if err != nil {
		status, msg := translate(c.logger, err, "Subscription not found", "Failed to subscribe")
		statusError(w, status, msg)
		return
	}

	message := "Thank you for subscribing to our newsletter!"
	if reactivated {
		message = "Welcome back! Your newsletter subscription has been reactivated."
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"status":  "success",
		"message": message,
	})
}
