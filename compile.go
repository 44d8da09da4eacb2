package uml

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Initialise runs the compilation visitor over the whole model and
// marks it clean (§4.7). It is idempotent: calling it again after no
// structural mutation recomputes the same behavior sequences.
func Initialise[M any](sm *StateMachine[M]) {
	sm.registry = newRegistry[M]()
	compileState[M](sm, false)
	compileTransitions[M](sm)
	sm.onInitialise = sm.behaviorRecord().Enter()
	sm.dirty = false
}

func newRegistry[M any]() *vertexRegistry[M] {
	return &vertexRegistry[M]{byQName: orderedmap.New[string, Vertex[M]]()}
}

// vertexRegistry resolves an Instance's string-keyed current-state
// value back to the live Vertex compiled behavior closures need to
// invoke. It keeps registration order (depth-first, as compiled) so
// compileTransitions visits vertices in the same order on every run.
type vertexRegistry[M any] struct {
	byQName *orderedmap.OrderedMap[string, Vertex[M]]
}

func (r *vertexRegistry[M]) register(v Vertex[M]) {
	r.byQName.Set(v.QualifiedName(), v)
}

func (r *vertexRegistry[M]) lookup(qname string) Vertex[M] {
	v, _ := r.byQName.Get(qname)
	return v
}

// All returns every registered vertex in compilation order.
func (r *vertexRegistry[M]) All() []Vertex[M] {
	out := make([]Vertex[M], 0, r.byQName.Len())
	for pair := r.byQName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// compileState implements §4.4's "State (including StateMachine and
// FinalState)" rule: visit children so region leaves/enters concatenate
// into the state's own leave/end_enter, then append user behavior.
func compileState[M any](s StateLike[M], deepHistoryAbove bool) {
	sm := s.machineRef()
	sm.registry.register(s)
	eb := s.behaviorRecord()
	*eb = ElementBehavior[M]{}
	appendLogHooks[M](eb, s.QualifiedName(), sm.config)

	for _, region := range s.Regions() {
		compileRegion[M](region, deepHistoryAbove)
		eb.Leave = eb.Leave.Concat(region.eb.Leave)
		eb.EndEnter = eb.EndEnter.Concat(region.eb.EndEnter)
	}

	switch concrete := s.(type) {
	case *State[M]:
		for _, a := range concrete.exitActions {
			eb.Leave = eb.Leave.PushAction(a)
		}
		for _, a := range concrete.entryActions {
			eb.BeginEnter = eb.BeginEnter.PushAction(a)
		}
	case *FinalState[M]:
		for _, a := range concrete.exitActions {
			eb.Leave = eb.Leave.PushAction(a)
		}
		for _, a := range concrete.entryActions {
			eb.BeginEnter = eb.BeginEnter.PushAction(a)
		}
	case *StateMachine[M]:
		for _, a := range concrete.exitActions {
			eb.Leave = eb.Leave.PushAction(a)
		}
		for _, a := range concrete.entryActions {
			eb.BeginEnter = eb.BeginEnter.PushAction(a)
		}
	}

	if s.Region() != nil {
		region := s.Region()
		qname := s.QualifiedName()
		eb.BeginEnter = eb.BeginEnter.Push(func(_ Event[M], inst Instance, _ bool) {
			inst.SetCurrent(region.QualifiedName(), qname)
		})
	}
}

// compileRegion implements §4.4's Region rule.
func compileRegion[M any](r *Region[M], deepHistoryAbove bool) {
	r.eb = ElementBehavior[M]{}
	appendLogHooks[M](&r.eb, r.QualifiedName(), r.machine.config)

	initial := regionInitial[M](r)
	childDeepAbove := deepHistoryAbove || (initial != nil && initial.kind == DeepHistory)

	for _, child := range r.Children() {
		compileVertex[M](child, childDeepAbove)
	}

	regionQName := r.QualifiedName()
	reg := r
	r.eb.Leave = r.eb.Leave.Push(func(ev Event[M], inst Instance, hist bool) {
		qname, ok := inst.GetCurrent(regionQName)
		if !ok {
			return
		}
		v := reg.machine.registry.lookup(qname)
		if v == nil {
			return
		}
		v.behaviorRecord().Leave.Invoke(ev, inst, hist)
	})

	useDynamic := deepHistoryAbove || initial == nil || initial.kind.isHistory()
	if useDynamic {
		r.eb.EndEnter = r.eb.EndEnter.Push(func(ev Event[M], inst Instance, hist bool) {
			isHistoryInitial := initial != nil && initial.kind.isHistory()
			var target Vertex[M]
			if hist || isHistoryInitial {
				if qname, ok := inst.GetCurrent(regionQName); ok {
					if v := reg.machine.registry.lookup(qname); v != nil {
						target = v
					}
				}
			}
			if target == nil {
				if initial == nil {
					return
				}
				target = initial
			}
			nextHist := hist || (initial != nil && initial.kind == DeepHistory)
			target.behaviorRecord().Enter().Invoke(ev, inst, nextHist)
		})
	} else {
		r.eb.EndEnter = r.eb.EndEnter.Concat(initial.eb.Enter())
	}
}

// compileVertex dispatches on concrete vertex kind (§4.4).
func compileVertex[M any](v Vertex[M], deepHistoryAbove bool) {
	switch t := v.(type) {
	case *FinalState[M]:
		compileState[M](t, deepHistoryAbove)
	case *State[M]:
		compileState[M](t, deepHistoryAbove)
	case *PseudoState[M]:
		compilePseudoState[M](t)
	}
}

// compilePseudoState implements §4.4's PseudoState rule. Initial is
// deliberately excluded from the "restore stored current state"
// branch: applying that check unconditionally (as a literal reading of
// the spec text would) would make every region silently remember state
// across plain re-entry, breaking ordinary (non-history) UML semantics
// and the distinction the spec itself draws between History and
// non-history initials elsewhere (§8 history-replay invariants only
// describe this behavior for Shallow/DeepHistory). History replay is
// therefore restricted to ShallowHistory/DeepHistory pseudostates here.
func compilePseudoState[M any](p *PseudoState[M]) {
	sm := p.machineRef()
	sm.registry.register(p)
	p.eb = ElementBehavior[M]{}
	appendLogHooks[M](&p.eb, p.QualifiedName(), sm.config)

	switch p.kind {
	case Initial:
		p.eb.EndEnter = p.eb.EndEnter.Push(func(ev Event[M], inst Instance, hist bool) {
			traverseInitialOutgoing[M](p, inst, ev)
		})
	case ShallowHistory, DeepHistory:
		region := p.region
		p.eb.EndEnter = p.eb.EndEnter.Push(func(ev Event[M], inst Instance, hist bool) {
			if region != nil {
				if qname, ok := inst.GetCurrent(region.QualifiedName()); ok {
					if v := sm.registry.lookup(qname); v != nil {
						v.behaviorRecord().Leave.Invoke(ev, inst, hist)
						v.behaviorRecord().Enter().Invoke(ev, inst, hist)
						return
					}
				}
			}
			traverseInitialOutgoing[M](p, inst, ev)
		})
	case Terminate:
		p.eb.BeginEnter = p.eb.BeginEnter.Push(func(_ Event[M], inst Instance, _ bool) {
			inst.Terminate()
		})
	case Choice, Junction:
		// Resolved entirely at transition-traversal time; no
		// element-level behavior to add.
	}
}

func traverseInitialOutgoing[M any](p *PseudoState[M], inst Instance, ev Event[M]) {
	if len(p.out) == 0 {
		return
	}
	traverse[M](p.out[0], inst, ev)
}

// appendLogHooks implements §4.4's Element rule: a log hook on leave
// and begin_enter. Hooks are installed for every Logger other than nil
// and NopLogger, including the stderr logger NewEngineConfig installs,
// so the default configuration logs every entry and exit. The
// source this was distilled from logged "enter" on both hooks, a
// copy-paste artefact the design notes call out; leave emits "exit"
// here.
func appendLogHooks[M any](eb *ElementBehavior[M], qualifiedName string, cfg *EngineConfig) {
	if cfg == nil || cfg.Logger == nil || cfg.Logger == NopLogger {
		return
	}
	logger := cfg.Logger
	eb.Leave = eb.Leave.Push(func(Event[M], Instance, bool) {
		logger.Log("exit %s", qualifiedName)
	})
	eb.BeginEnter = eb.BeginEnter.Push(func(Event[M], Instance, bool) {
		logger.Log("enter %s", qualifiedName)
	})
}
