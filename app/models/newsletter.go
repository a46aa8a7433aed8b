package models

import "time"

// Validate checks if the subscriber meets all validation requirements
func (n *Newsletter) Validate() error {
	return validate.Struct(n)
}

// BeforeSave sets up defaults before the subscriber is written.
func (n *Newsletter) BeforeSave() {
	if n.SubscribedAt.IsZero() {
		n.SubscribedAt = time.Now().UTC()
	}
}

// Reactivate restores a lapsed subscription in place, preserving the
// original record and its subscribed_at.
func (n *Newsletter) Reactivate() {
	n.IsActive = true
	n.UnsubscribedAt = nil
}

// Deactivate marks the subscription inactive and stamps the time.
func (n *Newsletter) Deactivate() {
	now := time.Now().UTC()
	n.IsActive = false
	n.UnsubscribedAt = &now
}
