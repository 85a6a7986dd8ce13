package feed

import (
	"fmt"
	"sync"
)

// Table is an in-memory Source. The network client fills one from
// snapshots; tests and offline runs fill it directly.
type Table struct {
	mu     sync.RWMutex
	agents map[AgentID]AgentState
	down   bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{agents: make(map[AgentID]AgentState)}
}

// Set stores or replaces the state of an agent.
func (t *Table) Set(s AgentState) {
	t.mu.Lock()
	t.agents[s.ID] = s
	t.mu.Unlock()
}

// Replace swaps the whole content, as one snapshot does.
func (t *Table) Replace(states []AgentState) {
	next := make(map[AgentID]AgentState, len(states))
	for _, s := range states {
		next[s.ID] = s
	}
	t.mu.Lock()
	t.agents = next
	t.mu.Unlock()
}

// SetDown marks the table unavailable; every lookup fails with
// ErrFeedUnavailable until cleared.
func (t *Table) SetDown(down bool) {
	t.mu.Lock()
	t.down = down
	t.mu.Unlock()
}

// Len returns the number of agents.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.agents)
}

func (t *Table) Agent(id AgentID) (AgentState, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.down {
		return AgentState{}, ErrFeedUnavailable
	}
	s, ok := t.agents[id]
	if !ok {
		return AgentState{}, fmt.Errorf("agent %q: %w", id, ErrAgentUnknown)
	}
	return s, nil
}

// Available reports whether lookups are currently answered.
func (t *Table) Available() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.down
}
