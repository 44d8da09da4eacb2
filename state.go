package uml

import orderedmap "github.com/wk8/go-ordered-map/v2"

// State is a Vertex that owns an ordered set of child Regions: zero
// makes it simple, one makes it composite, two or more makes it
// orthogonal (§3).
type State[M any] struct {
	base[M]
	regions      *orderedmap.OrderedMap[string, *Region[M]]
	entryActions []Action[M]
	exitActions  []Action[M]
}

// NewState constructs an unattached State; attach it with
// Region.AddVertex or State.AddVertex before compiling.
func NewState[M any](name string) *State[M] {
	return &State[M]{
		base:    base[M]{elementBase: elementBase[M]{name: name}},
		regions: orderedmap.New[string, *Region[M]](),
	}
}

// Regions returns the child regions in declaration order.
func (s *State[M]) Regions() []*Region[M] {
	out := make([]*Region[M], 0, s.regions.Len())
	for pair := s.regions.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// IsComposite reports whether this state has any child region.
func (s *State[M]) IsComposite() bool { return s.regions.Len() > 0 }

// IsOrthogonal reports whether this state has two or more child
// regions.
func (s *State[M]) IsOrthogonal() bool { return s.regions.Len() > 1 }

// AddRegion creates and attaches a new named region, for orthogonal
// states where each concurrent region needs its own identity.
func (s *State[M]) AddRegion(name string) *Region[M] {
	r := newRegion[M](name, s)
	s.regions.Set(name, r)
	s.machineRef().markDirty()
	return r
}

// DefaultRegion returns (creating if absent) the region named
// "default" that AddVertex uses, per §3: "states with vertices added
// directly obtain one implicit default region."
func (s *State[M]) DefaultRegion() *Region[M] {
	if r, ok := s.regions.Get("default"); ok {
		return r
	}
	return s.AddRegion("default")
}

// AddVertex attaches v to this state's default region.
func (s *State[M]) AddVertex(v Vertex[M]) *State[M] {
	s.DefaultRegion().AddVertex(v)
	return s
}

// Entry appends a user entry action, invoked at begin_enter after
// children are wired (§4.4 State).
func (s *State[M]) Entry(a Action[M]) *State[M] {
	s.entryActions = append(s.entryActions, a)
	return s
}

// Exit appends a user exit action, invoked at leave.
func (s *State[M]) Exit(a Action[M]) *State[M] {
	s.exitActions = append(s.exitActions, a)
	return s
}

// To creates an outgoing transition from s to target (nil target is
// forced to kind Internal per §3), defaulting to kind External.
func (s *State[M]) To(target Vertex[M], kind ...TransitionKind) *Transition[M] {
	return NewTransition[M](s, target, pickKind(target, kind))
}

// Remove detaches s from its parent region and marks the owning machine
// dirty. Outgoing and incoming transitions are detached too.
func (s *State[M]) Remove() {
	detachVertex[M](s)
}

// FinalState represents completion of its containing region (§3): it
// may carry entry/exit behavior but permits no outgoing transitions and
// no child regions.
type FinalState[M any] struct {
	State[M]
}

// NewFinalState constructs an unattached FinalState.
func NewFinalState[M any](name string) *FinalState[M] {
	return &FinalState[M]{State: *NewState[M](name)}
}

func (f *FinalState[M]) Remove() { detachVertex[M](f) }

// StateMachine is the model root: a State that additionally carries the
// dirty flag, the compiled onInitialise behavior, the engine
// configuration and the qualified-name registry used to resolve an
// Instance's string-keyed region→state mapping back to live vertices.
type StateMachine[M any] struct {
	State[M]
	dirty        bool
	onInitialise Behavior[M]
	config       *EngineConfig
	registry     *vertexRegistry[M]
}

// NewStateMachine constructs the root of a new model, with a default
// EngineConfig. Use WithConfig to override it before Initialise.
func NewStateMachine[M any](name string) *StateMachine[M] {
	sm := &StateMachine[M]{
		State:  *NewState[M](name),
		dirty:  true,
		config: NewEngineConfig(),
	}
	sm.machine = sm
	return sm
}

// WithConfig overrides the engine configuration; structural mutation
// semantics don't apply here, but it still marks dirty since log hooks
// and the separator are baked in at compile time.
func (sm *StateMachine[M]) WithConfig(cfg *EngineConfig) *StateMachine[M] {
	sm.config = cfg
	sm.dirty = true
	return sm
}

// Config returns the active engine configuration.
func (sm *StateMachine[M]) Config() *EngineConfig { return sm.config }

// Dirty reports whether the model needs recompilation.
func (sm *StateMachine[M]) Dirty() bool { return sm.dirty }

func (sm *StateMachine[M]) markDirty() {
	if sm != nil {
		sm.dirty = true
	}
}

func pickKind[M any](target Vertex[M], kind []TransitionKind) TransitionKind {
	if target == nil {
		return Internal
	}
	if len(kind) > 0 {
		return kind[0]
	}
	return External
}

func detachVertex[M any](v Vertex[M]) {
	m := v.machineRef()
	if r := v.Region(); r != nil {
		r.children.Delete(v.Name())
	}
	for _, t := range append([]*Transition[M]{}, v.Outgoing()...) {
		t.Remove()
	}
	for _, t := range append([]*Transition[M]{}, v.Incoming()...) {
		t.Remove()
	}
	m.markDirty()
}
