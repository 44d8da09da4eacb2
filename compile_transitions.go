package uml

// compileTransitions implements §4.5: it visits every registered
// vertex's outgoing transitions and compiles each into a flattened
// onTraverse behavior, dispatching by kind.
func compileTransitions[M any](sm *StateMachine[M]) {
	for _, v := range sm.registry.All() {
		for _, t := range v.Outgoing() {
			compileTransition[M](t)
		}
	}
}

func compileTransition[M any](t *Transition[M]) {
	switch t.kind {
	case Internal:
		compileInternalTransition[M](t)
	case Local:
		compileLocalTransition[M](t)
	default:
		compileExternalTransition[M](t)
	}
}

// compileInternalTransition implements §4.5's Internal rule: just the
// user effect, plus — when the engine is configured to treat internal
// transitions as completion-eligible — a trailing check of the
// source's own completeness.
func compileInternalTransition[M any](t *Transition[M]) {
	var b Behavior[M]
	b = b.PushAction(t.effect)
	if cfg := t.source.machineRef().config; cfg != nil && cfg.InternalTransitionsTriggerCompletion {
		source := t.source
		b = b.Push(func(ev Event[M], inst Instance, hist bool) {
			sl, ok := source.(StateLike[M])
			if !ok {
				return
			}
			if isCompleteState[M](sl, inst) {
				evaluateState[M](sl, inst, completionEvent[M](source))
			}
		})
	}
	t.onTraverse = b
}

// compileExternalTransition implements §4.5's External rule: the
// exit/entry split point i is purely structural — the greatest common
// ancestry prefix of source and target — so the whole sequence is
// precomputed once here and never touched again at dispatch time.
func compileExternalTransition[M any](t *Transition[M]) {
	if t.target == nil {
		t.onTraverse = Behavior[M]{}.PushAction(t.effect)
		return
	}
	sourceAncestry := Ancestry[M](t.source)
	targetAncestry := Ancestry[M](t.target)

	i := splitIndex[M](sourceAncestry, targetAncestry)

	var onTraverse Behavior[M]
	onTraverse = onTraverse.Concat(sourceAncestry[i].behaviorRecord().Leave)
	onTraverse = onTraverse.PushAction(t.effect)
	onTraverse = onTraverse.Concat(cascadeEnter[M](targetAncestry, i))
	onTraverse = onTraverse.Concat(t.target.behaviorRecord().EndEnter)
	t.onTraverse = onTraverse
}

// compileLocalTransition implements §4.5's Local rule. Unlike
// External, the split index genuinely depends on which ancestor is
// already active in a given instance (a local transition never leaves
// the composite state it is attached to), so only the per-step cascade
// segments are precomputed here; a thin closure picks the starting
// index at dispatch time.
func compileLocalTransition[M any](t *Transition[M]) {
	if t.target == nil {
		compileInternalTransition[M](t)
		return
	}
	targetAncestry := Ancestry[M](t.target)
	segments := make([]Behavior[M], len(targetAncestry))
	for idx := range targetAncestry {
		segments[idx] = cascadeStep[M](targetAncestry, idx)
	}
	effect := t.effect
	target := t.target

	t.onTraverse = Behavior[M]{
		func(ev Event[M], inst Instance, hist bool) {
			i := 0
			for i < len(targetAncestry) && isActiveVertex[M](targetAncestry[i], inst) {
				i++
			}
			if i >= len(targetAncestry) {
				i = len(targetAncestry) - 1
			}
			leaveCurrentInTargetRegion[M](targetAncestry, i, inst, ev, hist)

			if effect != nil {
				effect(ev, inst)
			}
			for idx := i; idx < len(segments); idx++ {
				segments[idx].Invoke(ev, inst, hist)
			}
			target.behaviorRecord().EndEnter.Invoke(ev, inst, hist)
		},
	}
}

// leaveCurrentInTargetRegion exits whatever is currently active in the
// region that contains targetAncestry[i] — not necessarily
// targetAncestry[i] itself, since it was picked for being the first
// *inactive* element on the path (§4.5 Local).
func leaveCurrentInTargetRegion[M any](path []Vertex[M], i int, inst Instance, ev Event[M], hist bool) {
	if i < 0 || i >= len(path) {
		return
	}
	region := path[i].Region()
	if region == nil {
		return
	}
	qname, ok := inst.GetCurrent(region.QualifiedName())
	if !ok {
		return
	}
	v := region.machine.registry.lookup(qname)
	if v == nil {
		return
	}
	v.behaviorRecord().Leave.Invoke(ev, inst, hist)
}

// splitIndex returns the index of the first element below the common
// ancestry prefix on the source side (the LCA's child), starting from
// the shorter ancestry's last index and decrementing while the elements
// one level up still differ (§4.5). When one path is a prefix of the
// other it returns the shorter path's last index.
func splitIndex[M any](source, target []Vertex[M]) int {
	minLen := len(source)
	if len(target) < minLen {
		minLen = len(target)
	}
	i := minLen - 1
	for i > 0 && !sameVertex[M](source[i-1], target[i-1]) {
		i--
	}
	return i
}

// cascadeEnter concatenates cascadeStep for every element of path from
// index i onward (§4.5's cascade-entry rule).
func cascadeEnter[M any](path []Vertex[M], i int) Behavior[M] {
	var out Behavior[M]
	for idx := i; idx < len(path); idx++ {
		out = out.Concat(cascadeStep[M](path, idx))
	}
	return out
}

// cascadeStep builds one ancestry element's contribution to a cascade
// entry: its own begin_enter, then — if this element owns orthogonal
// siblings the path does not pass through — each sibling region's own
// begin_enter followed immediately by its end_enter, so concurrent
// regions the transition does not target still reach their default
// vertex (§4.5: "cascade entry also default-enters the orthogonal
// siblings of any region the path passes through").
func cascadeStep[M any](path []Vertex[M], idx int) Behavior[M] {
	element := path[idx]
	var next Vertex[M]
	if idx+1 < len(path) {
		next = path[idx+1]
	}

	var b Behavior[M]
	b = b.Concat(element.behaviorRecord().BeginEnter)

	if next != nil {
		if sl, ok := element.(StateLike[M]); ok {
			for _, region := range sl.Regions() {
				if region.Contains(next) {
					continue
				}
				b = b.Concat(region.behaviorRecord().BeginEnter)
				b = b.Concat(region.behaviorRecord().EndEnter)
			}
		}
	}
	return b
}
