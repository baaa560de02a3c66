// Package api exposes a minimal HTTP and WebSocket service for running
// assembled programs remotely: one session per assembled source, a run
// endpoint, a stop endpoint that requests cooperative kill, a register
// snapshot endpoint, and a live-streaming WebSocket feed of step events.
package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/fiesterovishwa12/eseasm/assembler"
	"github.com/fiesterovishwa12/eseasm/simulator"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// Session is one assembled program bound to a simulator instance.
type Session struct {
	ID        string
	Sim       *simulator.Simulator
	Labels    map[string]int
	CreatedAt time.Time
}

// SessionManager holds every live session, keyed by ID.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	hub      *Hub
}

// NewSessionManager returns an empty SessionManager broadcasting step
// events through hub.
func NewSessionManager(hub *Hub) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		hub:      hub,
	}
}

// CreateSession assembles source and registers a new session for it.
func (sm *SessionManager) CreateSession(source string) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	a := assembler.New()
	result, err := a.Parse(source)
	if err != nil {
		return nil, err
	}
	image, err := a.Encode(result)
	if err != nil {
		return nil, err
	}

	sim := simulator.New()
	if err := sim.LoadImage(image); err != nil {
		return nil, err
	}

	session := &Session{
		ID:        id,
		Sim:       sim,
		Labels:    result.Labels.Snapshot(),
		CreatedAt: time.Now(),
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[id] = session
	return session, nil
}

// Get retrieves a session by ID.
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session.
func (sm *SessionManager) Delete(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(sm.sessions, id)
	return nil
}

func generateSessionID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
