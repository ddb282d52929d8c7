package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"doctor-booking-client/internal/model"
)

const fileName = "session.json"

// Store is the single source of truth for who is logged in. It is created
// once at startup and handed by reference to every consumer; there is no
// package-level singleton.
//
// Until Initialize has run, auth state is unknown, not unauthenticated:
// consumers must not redirect or fetch on its behalf.
type Store struct {
	mu   sync.Mutex
	once sync.Once

	user          *model.User
	token         string
	authenticated bool
	initialized   bool

	dir string
	log *zap.Logger
}

// Snapshot is a consistent copy of session state for guard decisions.
type Snapshot struct {
	User          *model.User
	Token         string
	Authenticated bool
	Initialized   bool
}

// persisted is the single durable-storage record, the whole session
// snapshot under one fixed file name.
type persisted struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func NewStore(stateDir string, log *zap.Logger) *Store {
	return &Store{dir: stateDir, log: log}
}

// Login replaces the session wholesale with the given user and token and
// persists it. Storage failures are logged and swallowed; in-memory state
// stays authoritative for the process lifetime.
func (s *Store) Login(u *model.User, token string) {
	s.mu.Lock()
	s.user = u
	s.token = token
	s.authenticated = true
	s.mu.Unlock()

	s.save(persisted{User: u, Token: token})
}

// Logout clears the session and removes the durable record. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.mu.Unlock()

	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("session: remove failed", zap.Error(err))
	}
}

// Initialize rehydrates the persisted snapshot, then flips the initialized
// flag. Runs its body exactly once; later calls are no-ops. A restored
// token whose expiry has passed is discarded rather than rehydrated.
func (s *Store) Initialize() {
	s.once.Do(func() {
		if p, ok := s.load(); ok {
			if _, err := ParseClaims(p.Token); err != nil {
				s.log.Info("session: discarding persisted token", zap.Error(err))
			} else {
				s.mu.Lock()
				s.user = p.User
				s.token = p.Token
				s.authenticated = true
				s.mu.Unlock()
			}
		}
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
	})
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Token:         s.token,
		Authenticated: s.authenticated,
		Initialized:   s.initialized,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Token implements the bearer-token source consumed by the API client.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) save(p persisted) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.log.Warn("session: mkdir failed", zap.Error(err))
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		s.log.Warn("session: marshal failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, fileName), b, 0o600); err != nil {
		s.log.Warn("session: write failed", zap.Error(err))
	}
}

func (s *Store) load() (persisted, bool) {
	var p persisted
	b, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("session: read failed", zap.Error(err))
		}
		return p, false
	}
	if err := json.Unmarshal(b, &p); err != nil {
		s.log.Warn("session: corrupt snapshot, ignoring", zap.Error(err))
		return p, false
	}
	if p.User == nil || p.Token == "" {
		return p, false
	}
	return p, true
}
