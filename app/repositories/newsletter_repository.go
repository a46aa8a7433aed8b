package repositories

import (
	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerNewsletterRepository implements NewsletterRepository using BadgerDB
type BadgerNewsletterRepository struct {
	db *badger.DB
}

// NewBadgerNewsletterRepository creates a new BadgerNewsletterRepository
func NewBadgerNewsletterRepository(db *badger.DB) *BadgerNewsletterRepository {
	return &BadgerNewsletterRepository{db: db}
}

// Save inserts or updates a subscriber, enforcing unique email
func (r *BadgerNewsletterRepository) Save(subscriber *models.Newsletter) error {
	subscriber.BeforeSave()

	return r.db.Update(func(txn *badger.Txn) error {
		if subscriber.ID == "" {
			subscriber.ID = newID()
		} else {
			var existing models.Newsletter
			err := getDocument(txn, []byte(NewsletterKeyPrefix+subscriber.ID), &existing)
			if err == nil && existing.Email != subscriber.Email {
				if err := releaseUnique(txn, "newsletter", "email", existing.Email); err != nil {
					return err
				}
			} else if err != nil && err != ErrNotFound {
				return err
			}
		}

		if err := ensureUnique(txn, "newsletter", "email", subscriber.Email, subscriber.ID); err != nil {
			return err
		}

		data, err := marshalEntity(subscriber)
		if err != nil {
			return err
		}
		return txn.Set([]byte(NewsletterKeyPrefix+subscriber.ID), data)
	})
}

// GetByEmail retrieves a subscriber through the email index
func (r *BadgerNewsletterRepository) GetByEmail(email string) (*models.Newsletter, error) {
	var subscriber models.Newsletter
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "newsletter", "email", email)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(NewsletterKeyPrefix+id), &subscriber)
	})
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// CountActive returns the number of active subscriptions
func (r *BadgerNewsletterRepository) CountActive() (int, error) {
	count := 0
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(NewsletterKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var subscriber models.Newsletter
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &subscriber)
			})
			if err != nil {
				return err
			}
			if subscriber.IsActive {
				count++
			}
		}
		return nil
	})
	return count, err
}
