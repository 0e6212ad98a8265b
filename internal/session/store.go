// Package session persists the bearer token across restarts, the same role
// localStorage played in the browser client. It backs the token sources of
// both the REST client and the real-time channel.
package session

import (
	"errors"
	"strings"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "session")

const tokenKey = "session/token"

// Store is a small Badger-backed KV holding the session token. The token is
// also cached in memory so Token can stay error-free on the hot path.
type Store struct {
	db *badger.DB

	mu    sync.RWMutex
	token string
}

// Open opens (or creates) the store at dir and loads any persisted token.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("session: dir is required")
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			s.token = string(val)
			return nil
		})
	})
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a session token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores a new bearer token, in memory and on disk.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tokenKey), []byte(token))
	})
}

// ClearToken drops the session, e.g. on logout or a 401.
func (s *Store) ClearToken() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(tokenKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		log.WithError(err).Warn("failed to clear persisted token")
	}
}
