package repositories

import (
	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSettingsRepository implements SettingsRepository using BadgerDB
type BadgerSettingsRepository struct {
	db *badger.DB
}

// NewBadgerSettingsRepository creates a new BadgerSettingsRepository
func NewBadgerSettingsRepository(db *badger.DB) *BadgerSettingsRepository {
	return &BadgerSettingsRepository{db: db}
}

// Get returns the settings singleton, creating it with defaults on
// first access.
func (r *BadgerSettingsRepository) Get() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, []byte(SettingsKey), &settings)
	})
	if err == nil {
		return &settings, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	defaults := models.DefaultSiteSettings()
	if err := r.Save(defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save writes the settings singleton
func (r *BadgerSettingsRepository) Save(settings *models.SiteSettings) error {
	settings.BeforeSave()
	if settings.ID == "" {
		settings.ID = "site"
	}

	return r.db.Update(func(txn *badger.Txn) error {
		data, err := marshalEntity(settings)
		if err != nil {
			return err
		}
		return txn.Set([]byte(SettingsKey), data)
	})
}
