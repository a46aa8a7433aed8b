package repositories

import (
	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Save inserts or updates a user, enforcing unique username and email
func (r *BadgerUserRepository) Save(user *models.User) error {
	user.BeforeSave()

	return r.db.Update(func(txn *badger.Txn) error {
		if user.ID == "" {
			user.ID = newID()
		} else {
			var existing models.User
			err := getDocument(txn, []byte(UserKeyPrefix+user.ID), &existing)
			if err == nil {
				if existing.Username != user.Username {
					if err := releaseUnique(txn, "user", "username", existing.Username); err != nil {
						return err
					}
				}
				if existing.Email != user.Email {
					if err := releaseUnique(txn, "user", "email", existing.Email); err != nil {
						return err
					}
				}
			} else if err != ErrNotFound {
				return err
			}
		}

		if err := ensureUnique(txn, "user", "username", user.Username, user.ID); err != nil {
			return err
		}
		if err := ensureUnique(txn, "user", "email", user.Email, user.ID); err != nil {
			return err
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set([]byte(UserKeyPrefix+user.ID), data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, []byte(UserKeyPrefix+id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "user", "username", username)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(UserKeyPrefix+id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
