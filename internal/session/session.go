// Package session owns the admin credential: restoring it at startup,
// adopting it on login and dropping it on logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/anarchistempire/empire/pkg/domain"
)

// EventKind says what changed in the session.
type EventKind int

const (
	Restored EventKind = iota + 1
	LoggedIn
	LoggedOut
)

func (k EventKind) String() string {
	switch k {
	case Restored:
		return "restored"
	case LoggedIn:
		return "logged_in"
	case LoggedOut:
		return "logged_out"
	}
	return "unknown"
}

// Event is delivered to listeners after the session changed.
type Event struct {
	Kind          EventKind
	Authenticated bool
}

// Authenticator exchanges credentials for a token; *client.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (domain.Credential, error)
}

// ErrEmptyToken is returned when an authenticator reports success with no token.
var ErrEmptyToken = errors.New("session: empty token")

// Store holds the current credential. Memory and the persisted copy are
// updated under one lock so a reader never sees them disagree mid-operation.
type Store struct {
	mu        sync.RWMutex
	token     domain.Credential
	persist   TokenStore
	log       zerolog.Logger
	listeners []func(Event)
}

// New creates an unauthenticated Store backed by persist.
func New(persist TokenStore, log zerolog.Logger) *Store {
	return &Store{persist: persist, log: log}
}

// OnChange registers fn to be called after every session transition.
func (s *Store) OnChange(fn func(Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Token returns the current credential, "" when logged out.
// It makes Store a client.TokenSource.
func (s *Store) Token() domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a credential is held.
func (s *Store) Authenticated() bool {
	return s.Token().Present()
}

// Restore adopts a previously persisted credential without contacting the
// service; the token is trusted until a guarded call is refused.
func (s *Store) Restore() bool {
	tok, err := s.persist.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("session: ignoring unreadable persisted token")
		tok = ""
	}
	tok = strings.TrimSpace(tok)

	s.mu.Lock()
	changed := s.token != domain.Credential(tok)
	s.token = domain.Credential(tok)
	listeners := s.listeners
	s.mu.Unlock()

	if tok != "" && changed {
		s.log.Info().Msg("session restored")
		notify(listeners, Event{Kind: Restored, Authenticated: true})
	}
	return tok != ""
}

// Login authenticates through auth and, on success, persists and adopts the
// token. On any failure the session and the persisted value are untouched.
func (s *Store) Login(ctx context.Context, auth Authenticator, username, password string) (domain.Credential, error) {
	tok, err := auth.Login(ctx, username, password)
	if err != nil {
		s.log.Info().Str("username", username).Err(err).Msg("login refused")
		return "", fmt.Errorf("session.Login: %w", err)
	}
	if !tok.Present() {
		return "", fmt.Errorf("session.Login: %w", ErrEmptyToken)
	}

	s.mu.Lock()
	if err := s.persist.Save(string(tok)); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("login: persist token")
		return "", fmt.Errorf("session.Login: persist: %w", err)
	}
	s.token = tok
	listeners := s.listeners
	s.mu.Unlock()

	s.log.Info().Str("username", username).Msg("logged in")
	notify(listeners, Event{Kind: LoggedIn, Authenticated: true})
	return tok, nil
}

// Logout drops the credential from memory and storage. It always succeeds;
// a storage failure is logged.
func (s *Store) Logout() {
	s.mu.Lock()
	if err := s.persist.Clear(); err != nil {
		s.log.Error().Err(err).Msg("logout: clear persisted token")
	}
	s.token = ""
	listeners := s.listeners
	s.mu.Unlock()

	s.log.Info().Msg("logged out")
	notify(listeners, Event{Kind: LoggedOut})
}

func notify(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
