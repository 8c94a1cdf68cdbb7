package session

import (
	"fmt"
	"strings"
	"sync"
)

// Role identifies the author of a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation log
type Turn struct {
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	ToolUsed string `json:"tool_used,omitempty"`
}

// Memory is the append-only conversation log for one session. It is the sole
// conversational state carried between dispatches.
type Memory struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewMemory creates an empty conversation log
func NewMemory() *Memory {
	return &Memory{}
}

// Append adds a turn at the end of the log
func (m *Memory) Append(turn Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
}

// Turns returns a copy of the log in chronological order
func (m *Memory) Turns() []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of recorded turns
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}

// Render formats the log for inclusion in a routing prompt
func (m *Memory) Render() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.turns) == 0 {
		return "(no prior conversation)"
	}

	var b strings.Builder
	for _, turn := range m.turns {
		switch turn.Role {
		case RoleUser:
			fmt.Fprintf(&b, "User: %s\n", turn.Content)
		case RoleAssistant:
			if turn.ToolUsed != "" {
				fmt.Fprintf(&b, "Assistant (used %s): %s\n", turn.ToolUsed, turn.Content)
			} else {
				fmt.Fprintf(&b, "Assistant: %s\n", turn.Content)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
