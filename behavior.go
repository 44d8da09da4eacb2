package uml

// Behavior is an ordered, flattened list of callbacks, composed only by
// concatenation. Invoke runs every callback in order, without
// short-circuiting: a panic from user code is a fatal signal to the
// caller and is left to propagate rather than swallowed here (§7
// propagation policy).
type Behavior[M any] []func(Event[M], Instance, bool)

// Push appends a single callback and returns the (possibly
// reallocated) behavior.
func (b Behavior[M]) Push(fn func(Event[M], Instance, bool)) Behavior[M] {
	return append(b, fn)
}

// PushAction adapts a plain Action (ignoring the history flag) onto the
// sequence.
func (b Behavior[M]) PushAction(a Action[M]) Behavior[M] {
	if a == nil {
		return b
	}
	return b.Push(func(ev Event[M], inst Instance, _ bool) { a(ev, inst) })
}

// Concat returns a fresh Behavior holding b's callbacks followed by
// other's. It never aliases either argument's backing array, since
// compiled products must not mutate one another (§4.3: enter() is
// "always materialised fresh to avoid aliasing mutation between
// compiled products").
func (b Behavior[M]) Concat(other Behavior[M]) Behavior[M] {
	out := make(Behavior[M], 0, len(b)+len(other))
	out = append(out, b...)
	out = append(out, other...)
	return out
}

// HasActions reports whether the sequence contains any callback.
func (b Behavior[M]) HasActions() bool { return len(b) > 0 }

// Invoke runs every callback in order.
func (b Behavior[M]) Invoke(ev Event[M], inst Instance, historyFlag bool) {
	for _, fn := range b {
		fn(ev, inst, historyFlag)
	}
}

// ElementBehavior is the per-element record the compilation visitor
// populates: §4.3's leave / begin_enter / end_enter triple.
type ElementBehavior[M any] struct {
	Leave      Behavior[M]
	BeginEnter Behavior[M]
	EndEnter   Behavior[M]
}

// Enter returns BeginEnter concatenated with EndEnter, freshly
// materialised on every call.
func (eb *ElementBehavior[M]) Enter() Behavior[M] {
	return eb.BeginEnter.Concat(eb.EndEnter)
}
