package repositories

import (
	"sort"

	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerTagRepository implements TagRepository using BadgerDB
type BadgerTagRepository struct {
	db *badger.DB
}

// NewBadgerTagRepository creates a new BadgerTagRepository
func NewBadgerTagRepository(db *badger.DB) *BadgerTagRepository {
	return &BadgerTagRepository{db: db}
}

// Save inserts or updates a tag, enforcing unique name and slug
func (r *BadgerTagRepository) Save(tag *models.Tag) error {
	tag.BeforeSave()
	if tag.Slug == "" {
		return ErrEmptySlug
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if tag.ID == "" {
			tag.ID = newID()
		} else {
			var existing models.Tag
			err := getDocument(txn, []byte(TagKeyPrefix+tag.ID), &existing)
			if err == nil {
				if existing.Name != tag.Name {
					if err := releaseUnique(txn, "tag", "name", existing.Name); err != nil {
						return err
					}
				}
				if existing.Slug != tag.Slug {
					if err := releaseUnique(txn, "tag", "slug", existing.Slug); err != nil {
						return err
					}
				}
			} else if err != ErrNotFound {
				return err
			}
		}

		if err := ensureUnique(txn, "tag", "name", tag.Name, tag.ID); err != nil {
			return err
		}
		if err := ensureUnique(txn, "tag", "slug", tag.Slug, tag.ID); err != nil {
			return err
		}

		data, err := marshalEntity(tag)
		if err != nil {
			return err
		}
		return txn.Set([]byte(TagKeyPrefix+tag.ID), data)
	})
}

// GetByID retrieves a tag by ID
func (r *BadgerTagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, []byte(TagKeyPrefix+id), &tag)
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetBySlug retrieves a tag through the slug index
func (r *BadgerTagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "tag", "slug", slug)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(TagKeyPrefix+id), &tag)
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves all tags sorted by name
func (r *BadgerTagRepository) List() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(TagKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tag models.Tag
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &tag)
			})
			if err != nil {
				return err
			}
			tags = append(tags, &tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// Count returns the number of tags
func (r *BadgerTagRepository) Count() (int, error) {
	tags, err := r.List()
	if err != nil {
		return 0, err
	}
	return len(tags), nil
}

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

// Save inserts or updates a category, enforcing unique name and slug.
// The parent chain is not checked for cycles.
func (r *BadgerCategoryRepository) Save(category *models.Category) error {
	category.BeforeSave()
	if category.Slug == "" {
		return ErrEmptySlug
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if category.ID == "" {
			category.ID = newID()
		} else {
			var existing models.Category
			err := getDocument(txn, []byte(CategoryKeyPrefix+category.ID), &existing)
			if err == nil {
				if existing.Name != category.Name {
					if err := releaseUnique(txn, "category", "name", existing.Name); err != nil {
						return err
					}
				}
				if existing.Slug != category.Slug {
					if err := releaseUnique(txn, "category", "slug", existing.Slug); err != nil {
						return err
					}
				}
			} else if err != ErrNotFound {
				return err
			}
		}

		if err := ensureUnique(txn, "category", "name", category.Name, category.ID); err != nil {
			return err
		}
		if err := ensureUnique(txn, "category", "slug", category.Slug, category.ID); err != nil {
			return err
		}

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}
		return txn.Set([]byte(CategoryKeyPrefix+category.ID), data)
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, []byte(CategoryKeyPrefix+id), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category through the slug index
func (r *BadgerCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "category", "slug", slug)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(CategoryKeyPrefix+id), &category)
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories sorted by name
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var category models.Category
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return err
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Count returns the number of categories
func (r *BadgerCategoryRepository) Count() (int, error) {
	categories, err := r.List()
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}
