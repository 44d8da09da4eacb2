package uml

import "fmt"

// Evaluate dispatches a single message through the model against one
// instance (§4.6). If the model is dirty it is recompiled first; if
// the instance has already terminated, Evaluate is a no-op returning
// false.
func Evaluate[M any](sm *StateMachine[M], inst Instance, payload M) bool {
	if sm.dirty {
		Initialise[M](sm)
	}
	if inst.IsTerminated() {
		return false
	}
	return evaluateState[M](sm, inst, NewEvent(payload))
}

// InitialiseInstance enters the root state machine into inst, running
// onInitialise — which recursively enters regions into their initial
// vertices, in turn possibly traversing their single outgoing
// transition (§4.7).
func InitialiseInstance[M any](sm *StateMachine[M], inst Instance) {
	if sm.dirty {
		Initialise[M](sm)
	}
	var zero M
	sm.onInitialise.Invoke(NewEvent(zero), inst, false)
}

// evaluateState implements §4.6's evaluate_state.
func evaluateState[M any](state StateLike[M], inst Instance, ev Event[M]) bool {
	selfCompletion := ev.IsCompletion() && sameVertex[M](ev.CompletionSource(), Vertex[M](state))

	consumed := false
	if !selfCompletion {
		for _, region := range state.Regions() {
			child := currentChild[M](region, inst)
			if child == nil {
				continue
			}
			if evaluateState[M](child, inst, ev) {
				consumed = true
			}
			if consumed && !isActiveVertex[M](Vertex[M](state), inst) {
				break
			}
		}
	}

	if consumed && !selfCompletion && isCompleteState[M](state, inst) {
		evaluateState[M](state, inst, completionEvent[M](Vertex[M](state)))
		return true
	}

	if !consumed {
		return dispatchOwnTransitions[M](state, inst, ev)
	}
	return consumed
}

// safeEvaluateGuard mirrors the teacher's safeEvaluateGuard
// (anggasct-fluo/machine.go): the single point user-supplied guard
// code is invoked, recovering a panic into an error rather than
// letting it unwind through Evaluate (§A.2).
func safeEvaluateGuard[M any](guard Guard[M], ev Event[M], inst Instance) (result bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = false
			err = fmt.Errorf("guard panic: %v", r)
		}
	}()
	result = guard(ev, inst)
	return result, nil
}

func dispatchOwnTransitions[M any](state StateLike[M], inst Instance, ev Event[M]) bool {
	var matches []*Transition[M]
	for _, t := range state.Outgoing() {
		if t.isElse {
			continue
		}
		if t.guard == nil {
			matches = append(matches, t)
			continue
		}
		ok, err := safeEvaluateGuard[M](t.guard, ev, inst)
		if err != nil {
			state.machineRef().config.Logger.Error("%v", err)
			continue
		}
		if ok {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return false
	case 1:
		return traverse[M](matches[0], inst, ev)
	default:
		state.machineRef().config.Logger.Error("%v", NewAmbiguousTransitionError(
			state.QualifiedName(), "multiple outbound transitions evaluated true"))
		return false
	}
}

// traverse implements §4.6's traverse.
func traverse[M any](t *Transition[M], inst Instance, ev Event[M]) bool {
	onTraverse := t.onTraverse
	cur := t
	for cur.target != nil {
		ps, ok := cur.target.(*PseudoState[M])
		if !ok || ps.kind != Junction {
			break
		}
		next, err := selectPseudo[M](ps, inst, ev)
		if err != nil {
			ps.machineRef().config.Logger.Error("%v", err)
			return false
		}
		onTraverse = onTraverse.Concat(next.onTraverse)
		cur = next
	}

	onTraverse.Invoke(ev, inst, false)

	if cur.target == nil {
		return true
	}
	if ps, ok := cur.target.(*PseudoState[M]); ok && ps.kind == Choice {
		next, err := selectPseudo[M](ps, inst, ev)
		if err != nil {
			ps.machineRef().config.Logger.Error("%v", err)
			return false
		}
		traverse[M](next, inst, ev)
		return true
	}
	if sl, ok := cur.target.(StateLike[M]); ok && isCompleteState[M](sl, inst) {
		evaluateState[M](sl, inst, completionEvent[M](cur.target))
	}
	return true
}

// selectPseudo implements §4.6's select.
func selectPseudo[M any](p *PseudoState[M], inst Instance, ev Event[M]) (*Transition[M], error) {
	var passing []*Transition[M]
	var elseT *Transition[M]
	for _, t := range p.out {
		if t.isElse {
			elseT = t
			continue
		}
		ok, err := safeEvaluateGuard[M](t.guard, ev, inst)
		if err != nil {
			p.machineRef().config.Logger.Error("%v", err)
			continue
		}
		if ok {
			passing = append(passing, t)
		}
	}

	switch p.kind {
	case Choice:
		if len(passing) == 1 {
			return passing[0], nil
		}
		if len(passing) > 1 {
			cfg := p.machineRef().config
			idx := 0
			if cfg.RNG != nil {
				idx = cfg.RNG(len(passing))
			}
			return passing[idx], nil
		}
		if elseT != nil {
			return elseT, nil
		}
		return nil, NewIllFormedTransitionError(p.QualifiedName(), "choice has no passing guard and no else")
	case Junction:
		if len(passing) > 1 {
			return nil, NewAmbiguousTransitionError(p.QualifiedName(), "multiple outbound guards true at junction")
		}
		if len(passing) == 1 {
			return passing[0], nil
		}
		if elseT != nil {
			return elseT, nil
		}
		return nil, NewIllFormedTransitionError(p.QualifiedName(), "junction has no passing guard and no else")
	default:
		return nil, NewIllFormedTransitionError(p.QualifiedName(), "select called on a non-choice/junction pseudostate")
	}
}

// IsActive reports whether v is currently active in inst (§4.6).
func IsActive[M any](v Vertex[M], inst Instance) bool { return isActiveVertex[M](v, inst) }

func isActiveVertex[M any](v Vertex[M], inst Instance) bool {
	if _, ok := v.(*StateMachine[M]); ok {
		return true
	}
	region := v.Region()
	if region == nil {
		return true
	}
	if !isActiveVertex[M](Vertex[M](region.owner), inst) {
		return false
	}
	qname, ok := inst.GetCurrent(region.QualifiedName())
	return ok && qname == v.QualifiedName()
}

// IsComplete reports whether a state is complete (§4.6): every child
// region's current vertex is a FinalState, and a state with no regions
// is complete. It takes a state only; there is no exported check for a
// single region.
func IsComplete[M any](state StateLike[M], inst Instance) bool { return isCompleteState[M](state, inst) }

func isCompleteState[M any](state StateLike[M], inst Instance) bool {
	regions := state.Regions()
	if len(regions) == 0 {
		return true
	}
	for _, r := range regions {
		if !isCompleteRegion[M](r, inst) {
			return false
		}
	}
	return true
}

func isCompleteRegion[M any](r *Region[M], inst Instance) bool {
	qname, ok := inst.GetCurrent(r.QualifiedName())
	if !ok {
		return false
	}
	v := r.machine.registry.lookup(qname)
	if v == nil {
		return false
	}
	_, isFinal := v.(*FinalState[M])
	return isFinal
}
