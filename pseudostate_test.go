package uml

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	errors []string
}

func (c *captureLogger) Log(string, ...any)  {}
func (c *captureLogger) Warn(string, ...any) {}
func (c *captureLogger) Error(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// TestJunctionChainUnambiguous grounds the non-conflicting half of
// scenario 5 (§8): a junction whose branch guards are mutually
// exclusive for the dispatched message composes cleanly into one
// traversal.
func TestJunctionChainUnambiguous(t *testing.T) {
	sm := NewStateMachine[string]("junction")
	root := sm.DefaultRegion()

	topInitial := NewPseudoState[string]("initial", Initial)
	s := NewState[string]("S")
	t1 := NewFinalState[string]("T1")
	t2 := NewFinalState[string]("T2")
	root.AddVertex(topInitial)
	root.AddVertex(s)
	root.AddVertex(t1)
	root.AddVertex(t2)
	topInitial.To(s)

	j := NewPseudoState[string]("j", Junction)
	root.AddVertex(j)
	s.To(j)
	j.To(t1).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "x" })
	j.To(t2).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "y" })

	inst := NewInstance()
	InitialiseInstance[string](sm, inst)

	ok := Evaluate[string](sm, inst, "x")
	require.True(t, ok, "expected the junction traversal to fire")
	assert.True(t, IsActive[string](Vertex[string](t1), inst), "expected T1 active")
	assert.False(t, IsActive[string](Vertex[string](t2), inst), "expected T2 not active")
}

// TestJunctionChainAmbiguous grounds the error half of scenario 5: both
// branch guards true at once is logged and leaves the instance
// unmutated (no mutation happened yet, since junctions resolve before
// any behavior runs).
func TestJunctionChainAmbiguous(t *testing.T) {
	sm := NewStateMachine[string]("junction-ambiguous")
	root := sm.DefaultRegion()

	topInitial := NewPseudoState[string]("initial", Initial)
	s := NewState[string]("S")
	t1 := NewFinalState[string]("T1")
	t2 := NewFinalState[string]("T2")
	root.AddVertex(topInitial)
	root.AddVertex(s)
	root.AddVertex(t1)
	root.AddVertex(t2)
	topInitial.To(s)

	j := NewPseudoState[string]("j", Junction)
	root.AddVertex(j)
	s.To(j)
	j.To(t1).When(func(Event[string], Instance) bool { return true })
	j.To(t2).When(func(Event[string], Instance) bool { return true })

	logger := &captureLogger{}
	sm.WithConfig(&EngineConfig{Logger: logger, RNG: DefaultRNG, Separator: "."})

	inst := NewInstance()
	InitialiseInstance[string](sm, inst)

	ok := Evaluate[string](sm, inst, "go")
	assert.False(t, ok, "expected no transition to fire on ambiguous junction")
	assert.True(t, IsActive[string](Vertex[string](s), inst), "expected S to remain active")
	assert.NotEmpty(t, logger.errors, "expected an ambiguity error to be logged")
}

// TestTerminate grounds scenario 6 (§8): entering a Terminate
// pseudostate sets is_terminated and every subsequent evaluate call
// returns false without inspection.
func TestTerminate(t *testing.T) {
	sm := NewStateMachine[string]("terminate")
	root := sm.DefaultRegion()

	topInitial := NewPseudoState[string]("initial", Initial)
	s := NewState[string]("S")
	term := NewPseudoState[string]("term", Terminate)
	root.AddVertex(topInitial)
	root.AddVertex(s)
	root.AddVertex(term)
	topInitial.To(s)
	s.To(term).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "stop" })

	inst := NewInstance()
	InitialiseInstance[string](sm, inst)

	require.False(t, inst.IsTerminated())
	Evaluate[string](sm, inst, "stop")
	require.True(t, inst.IsTerminated())

	ok := Evaluate[string](sm, inst, "stop")
	assert.False(t, ok, "expected evaluate to return false once terminated")
}
