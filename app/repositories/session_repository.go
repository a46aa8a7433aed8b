package repositories

import (
	"time"

	"pressroom/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Save upserts a session by its session key: an existing key's record
// is overwritten in place rather than duplicated.
func (r *BadgerSessionRepository) Save(session *models.Session) error {
	return r.db.Update(func(txn *badger.Txn) error {
		existingID, err := lookupUnique(txn, "session", "key", session.SessionKey)
		switch err {
		case nil:
			session.ID = existingID
		case ErrNotFound:
			if session.ID == "" {
				session.ID = newID()
			}
			if err := ensureUnique(txn, "session", "key", session.SessionKey, session.ID); err != nil {
				return err
			}
		default:
			return err
		}

		data, err := marshalEntity(session)
		if err != nil {
			return err
		}
		return txn.Set([]byte(SessionKeyPrefix+session.ID), data)
	})
}

// GetByKey retrieves a session through the session-key index
func (r *BadgerSessionRepository) GetByKey(sessionKey string) (*models.Session, error) {
	var session models.Session
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := lookupUnique(txn, "session", "key", sessionKey)
		if err != nil {
			return err
		}
		return getDocument(txn, []byte(SessionKeyPrefix+id), &session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteExpired removes every session past its expiry date and returns
// how many were dropped.
func (r *BadgerSessionRepository) DeleteExpired() (int, error) {
	now := time.Now()
	deleted := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)

		var expired []*models.Session
		prefix := []byte(SessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var session models.Session
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &session)
			})
			if err != nil {
				it.Close()
				return err
			}
			if session.ExpireDate.Before(now) {
				expired = append(expired, &session)
			}
		}
		it.Close()

		for _, session := range expired {
			if err := releaseUnique(txn, "session", "key", session.SessionKey); err != nil {
				return err
			}
			if err := txn.Delete([]byte(SessionKeyPrefix + session.ID)); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
