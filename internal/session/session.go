// Package session holds the signed-in identity and its bearer credential,
// persisted across runs in durable storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Storage keys. The user entry holds a JSON-encoded service.User.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNoToken is returned by the token source when no one is signed in.
var ErrNoToken = errors.New("no session token")

// Session is a snapshot of the current identity and credential.
// User is nil and Token empty when signed out.
type Session struct {
	User  *service.User
	Token string
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Listener is notified with the new session after every mutation.
type Listener func(Session)

// Store owns the Session. It is safe for concurrent use.
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu      sync.RWMutex
	loaded  bool
	current Session

	lmu       sync.Mutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

// New returns a Store backed by storage. A nil logger discards.
func New(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		storage:   storage,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Get returns the current session, reading durable storage on first use.
// Missing or corrupt entries read as signed out.
func (s *Store) Get() Session {
	s.mu.RLock()
	if s.loaded {
		cur := s.current
		s.mu.RUnlock()
		return cur.clone()
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.current = s.read()
		s.loaded = true
	}
	return s.current.clone()
}

func (s *Store) read() Session {
	var sess Session

	token, ok, err := s.storage.Get(KeyToken)
	if err != nil {
		s.logger.Debug("session token unreadable", logging.Error(err))
	} else if ok {
		sess.Token = token
	}

	raw, ok, err := s.storage.Get(KeyUser)
	if err != nil {
		s.logger.Debug("session user unreadable", logging.Error(err))
		return sess
	}
	if !ok || raw == "" {
		return sess
	}
	var u *service.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Debug("session user corrupt", logging.Error(err))
		return sess
	}
	sess.User = u
	return sess
}

// Set records a signed-in identity. A nil user or empty token leaves the
// existing value in place. Each entry is persisted independently: a failed
// write leaves that entry unchanged in memory too, and the error is returned.
func (s *Store) Set(user *service.User, token string) error {
	var errs []error

	s.mu.Lock()
	if !s.loaded {
		s.current = s.read()
		s.loaded = true
	}
	if token != "" {
		if err := s.storage.Set(KeyToken, token); err != nil {
			errs = append(errs, fmt.Errorf("failed to save token: %w", err))
		} else {
			s.current.Token = token
		}
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err == nil {
			err = s.storage.Set(KeyUser, string(data))
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to save user: %w", err))
		} else {
			u := *user
			s.current.User = &u
		}
	}
	snapshot := s.current.clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return errors.Join(errs...)
}

// Clear removes both durable entries and signs out in memory.
// Memory is reset even if a removal fails.
func (s *Store) Clear() error {
	s.mu.Lock()
	errTok := s.storage.Remove(KeyToken)
	errUser := s.storage.Remove(KeyUser)
	s.current = Session{}
	s.loaded = true
	s.mu.Unlock()

	s.notify(Session{})
	return errors.Join(errTok, errUser)
}

// Subscribe registers l to run after every Set or Clear, in registration
// order. The returned function unregisters it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) notify(sess Session) {
	s.lmu.Lock()
	ls := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		ls = append(ls, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, l := range ls {
		l(sess.clone())
	}
}

// TokenSource exposes the current token as an oauth2.TokenSource.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

type tokenSource struct {
	store *Store
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	tok := ts.store.Get().Token
	if tok == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

func (s Session) clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
