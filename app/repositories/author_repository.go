package repositories

import (
	"sort"

	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerAuthorRepository implements AuthorRepository using BadgerDB
type BadgerAuthorRepository struct {
	db *badger.DB
}

// NewBadgerAuthorRepository creates a new BadgerAuthorRepository
func NewBadgerAuthorRepository(db *badger.DB) *BadgerAuthorRepository {
	return &BadgerAuthorRepository{db: db}
}

// Save inserts or updates an author, enforcing unique username and email
func (r *BadgerAuthorRepository) Save(author *models.Author) error {
	author.BeforeSave()

	return r.db.Update(func(txn *badger.Txn) error {
		if author.ID == "" {
			author.ID = newID()
		} else {
			var existing models.Author
			err := getDocument(txn, []byte(AuthorKeyPrefix+author.ID), &existing)
			if err == nil {
				if existing.Username != author.Username {
					if err := releaseUnique(txn, "author", "username", existing.Username); err != nil {
						return err
					}
				}
				if existing.Email != author.Email {
					if err := releaseUnique(txn, "author", "email", existing.Email); err != nil {
						return err
					}
				}
			} else if err != ErrNotFound {
				return err
			}
		}

		if err := ensureUnique(txn, "author", "username", author.Username, author.ID); err != nil {
			return err
		}
		if err := ensureUnique(txn, "author", "email", author.Email, author.ID); err != nil {
			return err
		}

		data, err := marshalEntity(author)
		if err != nil {
			return err
		}
		return txn.Set([]byte(AuthorKeyPrefix+author.ID), data)
	})
}

// GetByID retrieves an author by ID
func (r *BadgerAuthorRepository) GetByID(id string) (*models.Author, error) {
	var author models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, []byte(AuthorKeyPrefix+id), &author)
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByUsername retrieves an author through the username index
func (r *BadgerAuthorRepository) GetByUsername(username string) (*models.Author, error) {
	var author models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "author", "username", username)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(AuthorKeyPrefix+id), &author)
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// List retrieves all authors, newest first
func (r *BadgerAuthorRepository) List() ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(AuthorKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var author models.Author
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &author)
			})
			if err != nil {
				return err
			}
			authors = append(authors, &author)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(authors, func(i, j int) bool {
		return authors[j].CreatedAt.Before(authors[i].CreatedAt)
	})
	return authors, nil
}

// Count returns the number of authors
func (r *BadgerAuthorRepository) Count() (int, error) {
	authors, err := r.List()
	if err != nil {
		return 0, err
	}
	return len(authors), nil
}
