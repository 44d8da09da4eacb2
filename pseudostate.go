package uml

// PseudoState is a Vertex tagged with one of the fixed pseudostate
// kinds (§3). It never owns child regions.
type PseudoState[M any] struct {
	base[M]
	kind PseudoStateKind
}

// NewPseudoState constructs an unattached pseudostate of the given
// kind.
func NewPseudoState[M any](name string, kind PseudoStateKind) *PseudoState[M] {
	return &PseudoState[M]{
		base: base[M]{elementBase: elementBase[M]{name: name}},
		kind: kind,
	}
}

// Kind returns the pseudostate's tag.
func (p *PseudoState[M]) Kind() PseudoStateKind { return p.kind }

// To creates an outgoing transition from this pseudostate. Initial
// pseudostates are required by §3 to have exactly one outgoing
// transition whose guard is the constant-true guard; To enforces the
// guard for Initial automatically, callers only need When for
// Choice/Junction branches.
func (p *PseudoState[M]) To(target Vertex[M], kind ...TransitionKind) *Transition[M] {
	t := NewTransition[M](p, target, pickKind(target, kind))
	if p.kind == Initial {
		t.guard = constTrueGuard[M]()
	}
	return t
}

// Remove detaches this pseudostate from its region and its
// transitions.
func (p *PseudoState[M]) Remove() { detachVertex[M](p) }
