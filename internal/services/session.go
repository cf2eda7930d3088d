package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jsongrid/backend/internal/logger"
	"github.com/jsongrid/backend/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the state one grid client works on: the current input text and
// mode, the result of the latest parse, and which groups are collapsed.
// Every input or mode change replaces the result as a whole.
type Session struct {
	ID string

	mu        sync.RWMutex
	parser    *ParserService
	mode      models.Mode
	text      string
	result    models.ParseResult
	collapsed CollapseSet
	updatedAt time.Time
}

// SessionState is a consistent copy of a session at one point in time.
type SessionState struct {
	ID          string             `json:"id"`
	Mode        models.Mode        `json:"mode"`
	Text        string             `json:"text"`
	Result      models.ParseResult `json:"result"`
	Grouped     bool               `json:"grouped"`
	Collapsed   []int              `json:"collapsed"`
	VisibleRows []models.Row       `json:"visibleRows"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func NewSession(id string, parser *ParserService, mode models.Mode, text string) *Session {
	s := &Session{
		ID:        id,
		parser:    parser,
		mode:      mode,
		text:      text,
		collapsed: make(CollapseSet),
	}
	s.reparse()
	return s
}

// SetInputText replaces the text and parses it under the current mode.
func (s *Session) SetInputText(text string) models.ParseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	return s.reparse()
}

// SetMode switches the declared mode and parses the current text again.
func (s *Session) SetMode(mode models.Mode) models.ParseResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return s.reparse()
}

// reparse must be called with the write lock held (or before the session is
// shared).
func (s *Session) reparse() models.ParseResult {
	s.result = s.parser.Parse(s.text, s.mode)
	s.updatedAt = time.Now()
	return s.result
}

func (s *Session) Result() models.ParseResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// ToggleGroup flips the collapsed state of a parent and reports whether it
// is collapsed afterwards.
func (s *Session) ToggleGroup(parentID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collapsed.Toggle(parentID)
}

func (s *Session) CollapseGroup(parentID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed.Collapse(parentID)
}

func (s *Session) ExpandGroup(parentID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed.Expand(parentID)
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{
		ID:          s.ID,
		Mode:        s.mode,
		Text:        s.text,
		Result:      s.result,
		Grouped:     HasGrouping(s.result.Rows),
		Collapsed:   s.collapsed.IDs(),
		VisibleRows: VisibleRows(s.result.Rows, s.collapsed),
		UpdatedAt:   s.updatedAt,
	}
}

// SessionStore keeps sessions in memory and drops them after a period
// without access.
type SessionStore struct {
	cache       *cache.Cache
	parser      *ParserService
	defaultMode models.Mode
}

func NewSessionStore(parser *ParserService, defaultMode models.Mode, ttl, cleanupInterval time.Duration) *SessionStore {
	if defaultMode == "" {
		defaultMode = models.ModeJSON
	}
	return &SessionStore{
		cache:       cache.New(ttl, cleanupInterval),
		parser:      parser,
		defaultMode: defaultMode,
	}
}

// Create starts a session with an initial parse of text. An empty mode
// means the store's default mode.
func (ss *SessionStore) Create(text string, mode models.Mode) *Session {
	if mode == "" {
		mode = ss.defaultMode
	}
	session := NewSession(uuid.NewString(), ss.parser, mode, text)
	ss.cache.SetDefault(session.ID, session)

	logger.WithSession(session.ID).WithField("mode", mode).Info("Session created")
	return session
}

// Get returns a session and extends its lifetime.
func (ss *SessionStore) Get(id string) (*Session, error) {
	item, found := ss.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	session := item.(*Session)
	ss.cache.SetDefault(id, session)
	return session, nil
}

func (ss *SessionStore) Delete(id string) error {
	if _, found := ss.cache.Get(id); !found {
		return ErrSessionNotFound
	}
	ss.cache.Delete(id)
	logger.WithSession(id).Info("Session deleted")
	return nil
}

// Count returns the number of live sessions, possibly including expired
// ones not yet cleaned up.
func (ss *SessionStore) Count() int {
	return ss.cache.ItemCount()
}
