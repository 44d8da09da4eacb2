package uml

import "testing"

func TestAncestryRootAndSelf(t *testing.T) {
	sm, c, a, _, _ := buildCompositeWithHistory()

	path := Ancestry[string](Vertex[string](a))
	if len(path) == 0 {
		t.Fatalf("expected a non-empty ancestry path")
	}
	if !sameVertex[string](path[0], Vertex[string](sm)) {
		t.Fatalf("expected ancestry[0] to be the root state machine")
	}
	if !sameVertex[string](path[len(path)-1], Vertex[string](a)) {
		t.Fatalf("expected ancestry.last to be the vertex itself")
	}

	cPath := Ancestry[string](Vertex[string](c))
	if len(cPath) != 2 {
		t.Fatalf("expected C's ancestry to be [root, C], got %d entries", len(cPath))
	}
}

func TestLCADivergesAtFirstDifferingAncestor(t *testing.T) {
	_, _, a, b, _ := buildCompositeWithHistory()

	aPath := Ancestry[string](Vertex[string](a))
	bPath := Ancestry[string](Vertex[string](b))

	lca := LCA[string](aPath, bPath)
	if lca != len(aPath)-2 {
		t.Fatalf("expected A and B to share everything up to C, got lca index %d", lca)
	}
	if sameVertex[string](aPath[lca+1], bPath[lca+1]) {
		t.Fatalf("expected ancestry to diverge immediately after the lca index")
	}
}

// TestNoOpConvergence grounds §8's invariant: a complete state with no
// outgoing transitions fires no completion transition and leaves the
// instance stable.
func TestNoOpConvergence(t *testing.T) {
	sm := NewStateMachine[string]("terminalstate")
	root := sm.DefaultRegion()

	topInitial := NewPseudoState[string]("initial", Initial)
	s := NewState[string]("S")
	root.AddVertex(topInitial)
	root.AddVertex(s)
	topInitial.To(s)

	inst := NewInstance()
	InitialiseInstance[string](sm, inst)

	if !IsActive[string](Vertex[string](s), inst) {
		t.Fatalf("expected S active after initialise")
	}
	if ok := Evaluate[string](sm, inst, "anything"); ok {
		t.Fatalf("expected no transition to fire: S has none")
	}
	if !IsActive[string](Vertex[string](s), inst) {
		t.Fatalf("expected S to remain active")
	}
}
