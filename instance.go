package uml

import (
	"sync"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Instance is the runtime's only dependency on per-object state (§6):
// an opaque region→state mapping plus a termination flag. Keys are
// qualified names rather than live model pointers, so alternate,
// persistence-backed implementations need only serialise strings —
// the model graph itself never needs to round-trip (§3: "Instances
// reference the model by read-only borrow; they never mutate it").
type Instance interface {
	IsTerminated() bool
	Terminate()
	SetCurrent(regionQualifiedName, stateQualifiedName string)
	GetCurrent(regionQualifiedName string) (string, bool)
}

// MapInstance is the default Instance: an ordered map guarded by a
// mutex, mirroring the teacher's StateMachineContext locking pattern.
type MapInstance struct {
	id         uuid.UUID
	mu         sync.RWMutex
	current    *orderedmap.OrderedMap[string, string]
	terminated bool
}

// NewInstance creates a fresh, non-terminated instance with no current
// state recorded for any region.
func NewInstance() *MapInstance {
	return &MapInstance{
		id:      uuid.New(),
		current: orderedmap.New[string, string](),
	}
}

// ID returns the instance's correlation id, stamped once at creation.
func (m *MapInstance) ID() uuid.UUID { return m.id }

func (m *MapInstance) IsTerminated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.terminated
}

func (m *MapInstance) Terminate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terminated = true
}

func (m *MapInstance) SetCurrent(regionQualifiedName, stateQualifiedName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Set(regionQualifiedName, stateQualifiedName)
}

func (m *MapInstance) GetCurrent(regionQualifiedName string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Get(regionQualifiedName)
}

// Snapshot returns a copy of the region→state mapping, for diagnostics.
// The copy is a plain Go map, so its iteration order is not defined.
func (m *MapInstance) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, m.current.Len())
	for pair := m.current.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}
