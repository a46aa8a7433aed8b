package models

import "time"

// Validate checks if the tag meets all validation requirements
func (t *Tag) Validate() error {
	return validate.Struct(t)
}

// BeforeSave derives the slug from the name when absent.
func (t *Tag) BeforeSave() {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
}

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	return validate.Struct(c)
}

// BeforeSave derives the slug from the name when absent.
func (c *Category) BeforeSave() {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}
