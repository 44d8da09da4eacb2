package uml

// Element is the abstract base shared by Region and Vertex: something
// with a name and a dotted qualified path from the root StateMachine.
type Element[M any] interface {
	Name() string
	QualifiedName() string
}

// elementBase holds the name every Element carries. Embedded by Region
// and by the vertex base type rather than tracked in a side map, so
// lookups stay field accesses instead of hash-map hits.
type elementBase[M any] struct {
	name string
}

func (e *elementBase[M]) Name() string { return e.name }

// Guard evaluates whether a transition should fire for the given event.
type Guard[M any] func(Event[M], Instance) bool

// Action performs a user entry, exit or transition-effect callback.
type Action[M any] func(Event[M], Instance)

// constTrueGuard is the Initial pseudostate's mandated guard and the
// default for transitions constructed without an explicit When.
func constTrueGuard[M any]() Guard[M] {
	return func(Event[M], Instance) bool { return true }
}

// constFalseGuard backs Else() transitions; select() special-cases the
// isElse flag rather than ever invoking this, but a transition without a
// guard must still have one set so ordinary dispatch never picks it up
// as an unconditional match.
func constFalseGuard[M any]() Guard[M] {
	return func(Event[M], Instance) bool { return false }
}
