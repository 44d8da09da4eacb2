package uml

import "testing"

// TestValidateMultipleInitials grounds §7 category 1's first example:
// more than one Initial pseudostate in a region.
func TestValidateMultipleInitials(t *testing.T) {
	sm := NewStateMachine[string]("dup-initial")
	root := sm.DefaultRegion()

	i1 := NewPseudoState[string]("i1", Initial)
	i2 := NewPseudoState[string]("i2", Initial)
	a := NewState[string]("A")
	root.AddVertex(i1)
	root.AddVertex(i2)
	root.AddVertex(a)
	i1.To(a)
	i2.To(a)

	Initialise[string](sm)
	issues := Validate[string](sm)

	found := false
	for _, issue := range issues {
		if issue.Element == root.QualifiedName() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a validation issue on the region with two Initial pseudostates, got %v", issues)
	}
}

// TestValidateFinalStateWithOutgoing grounds §7 category 1's second
// example.
func TestValidateFinalStateWithOutgoing(t *testing.T) {
	sm := NewStateMachine[string]("final-outgoing")
	root := sm.DefaultRegion()

	initial := NewPseudoState[string]("initial", Initial)
	f := NewFinalState[string]("F")
	a := NewState[string]("A")
	root.AddVertex(initial)
	root.AddVertex(f)
	root.AddVertex(a)
	initial.To(f)
	f.To(a)

	Initialise[string](sm)
	issues := Validate[string](sm)

	found := false
	for _, issue := range issues {
		if issue.Element == f.QualifiedName() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a validation issue on the final state with an outgoing transition, got %v", issues)
	}
}

// TestValidateLocalToNonDescendant grounds §7 category 1's third
// example.
func TestValidateLocalToNonDescendant(t *testing.T) {
	sm := NewStateMachine[string]("bad-local")
	root := sm.DefaultRegion()

	initial := NewPseudoState[string]("initial", Initial)
	a := NewState[string]("A")
	b := NewState[string]("B")
	root.AddVertex(initial)
	root.AddVertex(a)
	root.AddVertex(b)
	initial.To(a)
	a.To(b, Local)

	Initialise[string](sm)
	issues := Validate[string](sm)

	found := false
	for _, issue := range issues {
		if issue.Element == a.QualifiedName() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a validation issue for a, got %v", issues)
	}
}

// TestValidateInitialWithNonTrivialGuard grounds §7 category 1's
// fourth example: an Initial pseudostate whose sole outgoing
// transition carries a guard beyond the mandated constant-true one.
func TestValidateInitialWithNonTrivialGuard(t *testing.T) {
	sm := NewStateMachine[string]("guarded-initial")
	root := sm.DefaultRegion()

	initial := NewPseudoState[string]("initial", Initial)
	a := NewState[string]("A")
	root.AddVertex(initial)
	root.AddVertex(a)
	initial.To(a).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "go" })

	Initialise[string](sm)
	issues := Validate[string](sm)

	found := false
	for _, issue := range issues {
		if issue.Element == initial.QualifiedName() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a validation issue on the guarded Initial pseudostate, got %v", issues)
	}
}

func TestValidateCleanModelHasNoIssues(t *testing.T) {
	sm, _, _ := buildToggle()
	Initialise[string](sm)
	if issues := Validate[string](sm); len(issues) != 0 {
		t.Fatalf("expected no issues on a well-formed model, got %v", issues)
	}
}
