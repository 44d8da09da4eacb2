package uml

import "gopkg.in/yaml.v3"

// Dump renders a read-only YAML snapshot of the compiled model tree —
// regions, vertices, transitions and their kinds — for offline
// inspection (§C.1). It triggers Initialise first if the model is
// dirty; the snapshot itself is read from the model tree (regions,
// children, outgoing transitions), not from compiled behavior.
func Dump[M any](sm *StateMachine[M]) ([]byte, error) {
	if sm.dirty {
		Initialise[M](sm)
	}
	model := dumpModel{Name: sm.Name(), Root: dumpVertexOf[M](sm)}
	return yaml.Marshal(model)
}

type dumpModel struct {
	Name string     `yaml:"name"`
	Root dumpVertex `yaml:"root"`
}

type dumpVertex struct {
	Name     string           `yaml:"name"`
	Kind     string           `yaml:"kind"`
	Regions  []dumpRegion     `yaml:"regions,omitempty"`
	Outgoing []dumpTransition `yaml:"outgoing,omitempty"`
}

type dumpRegion struct {
	Name     string       `yaml:"name"`
	Children []dumpVertex `yaml:"children"`
}

type dumpTransition struct {
	Target string `yaml:"target,omitempty"`
	Kind   string `yaml:"kind"`
	Else   bool   `yaml:"else,omitempty"`
}

func dumpVertexOf[M any](v Vertex[M]) dumpVertex {
	dv := dumpVertex{Name: v.Name(), Kind: vertexKindLabel[M](v)}
	if sl, ok := v.(StateLike[M]); ok {
		for _, r := range sl.Regions() {
			dv.Regions = append(dv.Regions, dumpRegionOf[M](r))
		}
	}
	for _, t := range v.Outgoing() {
		dv.Outgoing = append(dv.Outgoing, dumpTransitionOf[M](t))
	}
	return dv
}

func dumpRegionOf[M any](r *Region[M]) dumpRegion {
	dr := dumpRegion{Name: r.Name()}
	for _, child := range r.Children() {
		dr.Children = append(dr.Children, dumpVertexOf[M](child))
	}
	return dr
}

func dumpTransitionOf[M any](t *Transition[M]) dumpTransition {
	dt := dumpTransition{Kind: t.kind.String(), Else: t.isElse}
	if t.target != nil {
		dt.Target = t.target.QualifiedName()
	}
	return dt
}

func vertexKindLabel[M any](v Vertex[M]) string {
	switch t := v.(type) {
	case *StateMachine[M]:
		return "StateMachine"
	case *FinalState[M]:
		return "FinalState"
	case *State[M]:
		return "State"
	case *PseudoState[M]:
		return t.kind.String()
	default:
		return "Unknown"
	}
}
