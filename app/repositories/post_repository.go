package repositories

import (
	"time"

	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Save inserts or updates a post by identity. The lifecycle hook runs
// before the write, and the slug's unique index is maintained in the
// same transaction, so a colliding slug fails the whole write.
func (r *BadgerPostRepository) Save(post *models.BlogPost) error {
	post.BeforeSave()
	if post.Slug == "" {
		return ErrEmptySlug
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if post.ID == "" {
			post.ID = newID()
		} else {
			// Relocate the slug index if the slug changed.
			var existing models.BlogPost
			err := getDocument(txn, []byte(PostKeyPrefix+post.ID), &existing)
			if err == nil && existing.Slug != post.Slug {
				if err := releaseUnique(txn, "post", "slug", existing.Slug); err != nil {
					return err
				}
			} else if err != nil && err != ErrNotFound {
				return err
			}
		}

		if err := ensureUnique(txn, "post", "slug", post.Slug, post.ID); err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set([]byte(PostKeyPrefix+post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, []byte(PostKeyPrefix+id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post through the slug index
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "post", "slug", slug)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(PostKeyPrefix+id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Find scans the post collection and returns an independent snapshot
// matching the filter, sorted and sliced per the filter.
func (r *BadgerPostRepository) Find(filter PostFilter) ([]*models.BlogPost, error) {
	posts, err := r.scan(filter)
	if err != nil {
		return nil, err
	}
	filter.sortPosts(posts)
	return filter.slice(posts), nil
}

// Count returns the number of posts matching the filter, ignoring
// offset/limit.
func (r *BadgerPostRepository) Count(filter PostFilter) (int, error) {
	posts, err := r.scan(filter)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (r *BadgerPostRepository) scan(filter PostFilter) ([]*models.BlogPost, error) {
	now := time.Now().UTC()
	var posts []*models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.BlogPost
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if filter.matches(&post, now) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post and its slug index entry
func (r *BadgerPostRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var post models.BlogPost
		if err := getDocument(txn, []byte(PostKeyPrefix+id), &post); err != nil {
			return err
		}
		if err := releaseUnique(txn, "post", "slug", post.Slug); err != nil {
			return err
		}
		return txn.Delete([]byte(PostKeyPrefix + id))
	})
}
