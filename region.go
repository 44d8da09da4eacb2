package uml

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Region is an Element owning an ordered set of child Vertices (§3).
// Declaration order is semantically load-bearing for orthogonal states
// (§8: "Orthogonal-region entry ordering is stable across repeated
// entries"), so children are kept in a go-ordered-map rather than a
// plain map, giving O(1) lookup-by-name without losing insertion order.
type Region[M any] struct {
	elementBase[M]
	owner    StateLike[M]
	children *orderedmap.OrderedMap[string, Vertex[M]]
	machine  *StateMachine[M]
	eb       ElementBehavior[M]
}

func newRegion[M any](name string, owner StateLike[M]) *Region[M] {
	return &Region[M]{
		elementBase[M]: elementBase[M]{name: name},
		owner:          owner,
		children:       orderedmap.New[string, Vertex[M]](),
		machine:        owner.machineRef(),
	}
}

// Owner returns the State (or StateMachine) this region belongs to.
func (r *Region[M]) Owner() StateLike[M] { return r.owner }

// QualifiedName is the owning state's qualified name, the separator,
// then this region's own name.
func (r *Region[M]) QualifiedName() string {
	return r.owner.QualifiedName() + r.machine.config.Separator + r.name
}

func (r *Region[M]) behaviorRecord() *ElementBehavior[M] { return &r.eb }

// AddVertex attaches v as a child of this region, wiring its back
// reference (and, recursively, every descendant vertex's machine
// pointer, so subtrees built standalone and attached later resolve
// qualified names and config correctly), and marks the owning machine
// dirty.
func (r *Region[M]) AddVertex(v Vertex[M]) *Region[M] {
	switch t := v.(type) {
	case *State[M]:
		t.region = r
	case *FinalState[M]:
		t.region = r
	case *PseudoState[M]:
		t.region = r
	}
	propagateMachine[M](v, r.machine)
	r.children.Set(v.Name(), v)
	r.machine.markDirty()
	return r
}

// propagateMachine sets v's machine pointer and recurses into its
// regions and their children, so a standalone-built composite subtree
// attaches correctly regardless of build order.
func propagateMachine[M any](v Vertex[M], m *StateMachine[M]) {
	switch t := v.(type) {
	case *State[M]:
		t.machine = m
		for _, region := range t.Regions() {
			region.machine = m
			for _, child := range region.Children() {
				propagateMachine[M](child, m)
			}
		}
	case *FinalState[M]:
		t.machine = m
	case *PseudoState[M]:
		t.machine = m
	}
}

// Children returns the child vertices in declaration order.
func (r *Region[M]) Children() []Vertex[M] {
	out := make([]Vertex[M], 0, r.children.Len())
	for pair := r.children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Contains reports whether v is a direct child of this region.
func (r *Region[M]) Contains(v Vertex[M]) bool {
	if v == nil {
		return false
	}
	found, ok := r.children.Get(v.Name())
	return ok && found.Name() == v.Name() && sameVertex(found, v)
}

func sameVertex[M any](a, b Vertex[M]) bool {
	return a.QualifiedName() == b.QualifiedName()
}

// Remove detaches this region from its owning state and sets dirty.
func (r *Region[M]) Remove() {
	if s, ok := r.owner.(*State[M]); ok {
		s.regions.Delete(r.name)
	}
	r.machine.markDirty()
}

// regionInitial returns the first child pseudostate whose kind is
// Initial, ShallowHistory or DeepHistory (§4.4 Region).
func regionInitial[M any](r *Region[M]) *PseudoState[M] {
	for pair := r.children.Oldest(); pair != nil; pair = pair.Next() {
		if ps, ok := pair.Value.(*PseudoState[M]); ok {
			switch ps.kind {
			case Initial, ShallowHistory, DeepHistory:
				return ps
			}
		}
	}
	return nil
}

func lookupInRegion[M any](r *Region[M], qname string) (Vertex[M], bool) {
	for pair := r.children.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.QualifiedName() == qname {
			return pair.Value, true
		}
	}
	return nil, false
}

func currentChild[M any](r *Region[M], inst Instance) StateLike[M] {
	qname, ok := inst.GetCurrent(r.QualifiedName())
	if !ok {
		return nil
	}
	v, ok := lookupInRegion[M](r, qname)
	if !ok {
		return nil
	}
	sl, _ := v.(StateLike[M])
	return sl
}
