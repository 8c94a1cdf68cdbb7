// Package session holds the per-user conversational state: a preference store
// and an append-only conversation memory. Each session owns disjoint instances
// of both; the knowledge document and fallback tables are shared read-only.
package session

import "github.com/google/uuid"

// Session is one user's conversational context
type Session struct {
	ID     string
	Prefs  *Preferences
	Memory *Memory
}

// New creates a session with fresh preference and memory instances
func New() *Session {
	return &Session{
		ID:     uuid.New().String(),
		Prefs:  NewPreferences(),
		Memory: NewMemory(),
	}
}
