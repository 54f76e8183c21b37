// Package session keeps the state of the signed-in user for the lifetime of
// a page (web) or a process (CLI): the user record and its access token.
//
// The token is mirrored to a key/value Storage under common.TokenStorageKey
// so a reload can pick it up again. In the browser the storage is go-app's
// LocalStorage, in the terminal client it is the SQLite metadata table.
//
// Login and Logout are the transitions callers should use. SetUser and
// SetToken exist for partial refreshes (a reloaded profile, a rotated token)
// and deliberately do not touch the other field.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tardis/internal/common"
)

var ErrIncompleteSession = errors.New("session needs both a user and a token")

// Storage is the subset of a browser-style key/value store the session needs.
// Values are encoded by the storage (go-app uses JSON). Get leaves v
// untouched when the key is absent.
type Storage interface {
	Set(k string, v any) error
	Get(k string, v any) error
	Del(k string)
}

// User is the authenticated account as returned by the API's /users/me.
type User struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	CharacterID   int64  `json:"character_id"`
	CharacterName string `json:"character_name,omitempty"`
}

// State is a point-in-time copy of the session.
type State struct {
	User  *User
	Token string
}

// Authenticated reports whether both halves of the session are present.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

type subscriber struct {
	id int
	fn func(State)
}

// Store is the process-wide session. The zero value is not usable; use New.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	user    *User
	token   string

	subMu  sync.Mutex
	nextID int
	subs   []subscriber
}

func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore loads a previously persisted token. The user stays unknown until
// the caller fetches it and calls Login, or calls Logout if that fails.
// Without a stored token the in-memory one is kept.
func (s *Store) Restore() error {
	var token string
	if err := s.storage.Get(common.TokenStorageKey, &token); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetUser replaces the user unconditionally. nil clears it.
func (s *Store) SetUser(u *User) {
	s.mu.Lock()
	s.user = cloneUser(u)
	s.mu.Unlock()

	s.notify()
}

// SetToken replaces the token and mirrors it to storage. The in-memory value
// is updated even when persisting fails; the storage error is returned so
// the caller can report it. An empty token removes the stored key.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	err := s.persist(token)
	s.mu.Unlock()

	s.notify()
	return err
}

// Login sets user and token in one step. Both are required: a missing one
// returns ErrIncompleteSession and leaves the session as it was. As with
// SetToken, memory is updated even when persisting the token fails; that
// storage error is returned.
func (s *Store) Login(u *User, token string) error {
	if u == nil || token == "" {
		return ErrIncompleteSession
	}

	s.mu.Lock()
	s.user = cloneUser(u)
	s.token = token
	err := s.persist(token)
	s.mu.Unlock()

	s.notify()
	return err
}

// Logout forgets the user and the token, in memory and in storage.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.storage.Del(common.TokenStorageKey)
	s.mu.Unlock()

	s.notify()
}

// User returns a copy of the current user.
func (s *Store) User() (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user), s.user != nil
}

// Token returns the current access token.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{User: cloneUser(s.user), Token: s.token}
}

func (s *Store) Authenticated() bool {
	return s.Snapshot().Authenticated()
}

// Subscribe registers fn to be called with the new state after every change.
// Callbacks run synchronously on the mutating goroutine, outside the lock.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// persist must be called with mu held.
func (s *Store) persist(token string) error {
	if token == "" {
		s.storage.Del(common.TokenStorageKey)
		return nil
	}
	if err := s.storage.Set(common.TokenStorageKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

func (s *Store) notify() {
	state := s.Snapshot()

	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(state)
	}
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
