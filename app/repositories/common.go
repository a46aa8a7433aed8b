package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	// Key prefixes for the document collections
	PostKeyPrefix       = "post:"
	AuthorKeyPrefix     = "author:"
	TagKeyPrefix        = "tag:"
	CategoryKeyPrefix   = "category:"
	NewsletterKeyPrefix = "newsletter:"
	UserKeyPrefix       = "user:"
	SessionKeyPrefix    = "session:"

	// The settings document is a singleton with a fixed key.
	SettingsKey = "settings:site"

	// Secondary index keys enforcing unique fields:
	// unique:<collection>:<field>:<value> -> owning document id
	uniqueKeyPrefix = "unique:"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrEmptySlug rejects saves whose derived slug came out empty,
	// e.g. a punctuation-only title. Slugs are lookup keys and must
	// never be blank.
	ErrEmptySlug = errors.New("empty slug")
)

// newID mints a document identity. Every collection uses uuid strings.
func newID() string {
	return uuid.NewString()
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

func uniqueKey(collection, field, value string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%s", uniqueKeyPrefix, collection, field, value))
}

// ensureUnique claims a unique-field value for the given document inside
// the current transaction. A value already owned by a different document
// fails the write with ErrDuplicateKey.
func ensureUnique(txn *badger.Txn, collection, field, value, id string) error {
	key := uniqueKey(collection, field, value)
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return txn.Set(key, []byte(id))
	}
	if err != nil {
		return err
	}

	var owner string
	if err := item.Value(func(val []byte) error {
		owner = string(val)
		return nil
	}); err != nil {
		return err
	}
	if owner != id {
		return fmt.Errorf("%w: %s.%s=%q", ErrDuplicateKey, collection, field, value)
	}
	return nil
}

// releaseUnique gives up a previously claimed unique-field value, used
// when a unique field changes or its document is deleted.
func releaseUnique(txn *badger.Txn, collection, field, value string) error {
	return txn.Delete(uniqueKey(collection, field, value))
}

// lookupUnique resolves a unique-field value to its owning document id.
func lookupUnique(txn *badger.Txn, collection, field, value string) (string, error) {
	item, err := txn.Get(uniqueKey(collection, field, value))
	if err == badger.ErrKeyNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	var id string
	err = item.Value(func(val []byte) error {
		id = string(val)
		return nil
	})
	return id, err
}

// getDocument reads and unmarshals one document by its full key.
func getDocument(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}
