package models

import (
	"strings"
	"time"
)

// Validate checks if the author meets all validation requirements
func (a *Author) Validate() error {
	return validate.Struct(a)
}

// BeforeSave maintains the author's timestamps on every write.
func (a *Author) BeforeSave() {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

// FullName joins first and last name, trimming when either is empty.
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AuthorFromUser materializes an author profile from a user. The copy
// is taken once at creation time and never re-synced with the user.
func AuthorFromUser(user *User) *Author {
	return &Author{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		IsActive:  true,
	}
}
