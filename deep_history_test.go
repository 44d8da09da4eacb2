package uml

import "testing"

// buildDeepHistoryNesting grounds the §9 callout: a deep-history
// pseudostate one level up must force history-style restore into a
// grandchild region even though that region's own initial is a plain
// Initial, not a history pseudostate of its own.
func buildDeepHistoryNesting() (sm *StateMachine[string], c, p, x, y, d *State[string]) {
	sm = NewStateMachine[string]("deep")
	root := sm.DefaultRegion()

	topInitial := NewPseudoState[string]("initial", Initial)
	c = NewState[string]("C")
	d = NewState[string]("D")
	root.AddVertex(topInitial)
	root.AddVertex(c)
	root.AddVertex(d)
	topInitial.To(c)

	cRegion := c.DefaultRegion()
	deepHist := NewPseudoState[string]("deepHistory", DeepHistory)
	p = NewState[string]("P")
	cRegion.AddVertex(deepHist)
	cRegion.AddVertex(p)
	deepHist.To(p)

	pRegion := p.DefaultRegion()
	pInitial := NewPseudoState[string]("pinit", Initial)
	x = NewState[string]("X")
	y = NewState[string]("Y")
	pRegion.AddVertex(pInitial)
	pRegion.AddVertex(x)
	pRegion.AddVertex(y)
	pInitial.To(x)
	x.To(y).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "toY" })

	c.To(d).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "exit" })
	d.To(c).When(func(ev Event[string], _ Instance) bool { return ev.Payload() == "enter" })

	return sm, c, p, x, y, d
}

func TestDeepHistoryCascadesIntoPlainInitialGrandchild(t *testing.T) {
	sm, c, p, _, y, d := buildDeepHistoryNesting()
	inst := NewInstance()
	InitialiseInstance[string](sm, inst)

	Evaluate[string](sm, inst, "toY")
	if !IsActive[string](Vertex[string](y), inst) {
		t.Fatalf("expected Y active after toY")
	}

	Evaluate[string](sm, inst, "exit")
	if !IsActive[string](Vertex[string](d), inst) {
		t.Fatalf("expected D active after exiting C")
	}

	Evaluate[string](sm, inst, "enter")
	if !IsActive[string](Vertex[string](c), inst) {
		t.Fatalf("expected C active after re-entering")
	}
	if !IsActive[string](Vertex[string](p), inst) {
		t.Fatalf("expected deep history to restore P")
	}
	if !IsActive[string](Vertex[string](y), inst) {
		t.Fatalf("expected deep history to cascade past P's plain initial and restore Y")
	}
}
