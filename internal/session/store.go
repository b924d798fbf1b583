package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tgrab/tgrab/internal/model"
)

// Store limits
const (
	// TokenBytes is the entropy of a session token before encoding.
	TokenBytes = 12

	DefaultTTL         = time.Hour
	DefaultMaxSessions = 512
)

// ErrStaleSession is returned when a callback references an unknown or
// expired token, or a choice index outside the session's list. The caller
// is expected to ask the user to resend the link.
var ErrStaleSession = errors.New("session is stale")

// Session pairs a source URL with the exact ordered list of choices that
// were shown to the user. Immutable once created.
type Session struct {
	Token     string
	SourceURL string
	Choices   []model.FormatChoice
	CreatedAt time.Time
}

// Selection is a resolved (token, index) pair.
type Selection struct {
	SourceURL string
	Choice    model.FormatChoice
	Index     int
}

// Store is the process-wide table of pending format-selection sessions.
// Safe for concurrent use from independent conversations.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// NewStore creates a session store with the given TTL and size cap.
// Non-positive arguments fall back to the defaults.
func NewStore(ttl time.Duration, maxSessions int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create registers a new session and returns its token. The token is
// cryptographically random and URL-safe; a collision within the store's
// lifetime is negligible but still detected and rejected.
func (s *Store) Create(sourceURL string, choices []model.FormatChoice) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[token]; exists {
		return "", fmt.Errorf("session token collision")
	}

	s.pruneLocked()

	s.sessions[token] = &Session{
		Token:     token,
		SourceURL: sourceURL,
		Choices:   choices,
		CreatedAt: s.now(),
	}
	return token, nil
}

// Get returns the session for a token, or false when it is unknown or
// expired. No mutation besides dropping the entry once it has expired.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.CreatedAt) > s.ttl {
		delete(s.sessions, token)
		return nil, false
	}
	return sess, true
}

// Resolve validates a (token, index) pair and returns the selection to
// download. Unknown tokens, expired sessions and out-of-range indices all
// yield ErrStaleSession; there is no partial match. Sessions are not
// consumed: the same pair may resolve again (repeated clicks each trigger
// their own download).
func (s *Store) Resolve(token string, index int) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || s.now().Sub(sess.CreatedAt) > s.ttl {
		return Selection{}, ErrStaleSession
	}
	if index < 0 || index >= len(sess.Choices) {
		return Selection{}, ErrStaleSession
	}
	return Selection{
		SourceURL: sess.SourceURL,
		Choice:    sess.Choices[index],
		Index:     index,
	}, nil
}

// Len returns the number of stored sessions, including not yet pruned
// expired ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// pruneLocked drops expired sessions and, if the store is still at
// capacity, evicts the oldest entries. Caller holds the lock.
func (s *Store) pruneLocked() {
	now := s.now()
	for token, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > s.ttl {
			delete(s.sessions, token)
		}
	}

	for len(s.sessions) >= s.maxSessions {
		oldestToken := ""
		var oldest time.Time
		for token, sess := range s.sessions {
			if oldestToken == "" || sess.CreatedAt.Before(oldest) {
				oldestToken = token
				oldest = sess.CreatedAt
			}
		}
		delete(s.sessions, oldestToken)
	}
}

func newToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
