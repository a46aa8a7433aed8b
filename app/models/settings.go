package models

import "time"

const DefaultPostsPerPage = 10

// Validate checks if the settings meet all validation requirements
func (s *SiteSettings) Validate() error {
	return validate.Struct(s)
}

// BeforeSave refreshes the settings timestamp on every write.
func (s *SiteSettings) BeforeSave() {
	s.UpdatedAt = time.Now().UTC()
}

// DefaultSiteSettings is the document created on first access when no
// settings exist yet.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		SiteName:         "My Pressroom Blog",
		PostsPerPage:     DefaultPostsPerPage,
		EnableComments:   true,
		EnableNewsletter: true,
	}
}

// Validate checks if the session meets all validation requirements
func (s *Session) Validate() error {
	return validate.Struct(s)
}

// Expired reports whether the session is past its expiry date.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpireDate)
}
