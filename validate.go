package uml

import "fmt"

// ValidationIssue is one structural problem surfaced by Validate,
// returned to the caller instead of only logged (§C.2) so callers and
// tests can assert on validation outcomes without scraping log output.
type ValidationIssue struct {
	Element string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Element, i.Message)
}

// Validate walks the whole model and reports every structural problem
// from §7 category 1. It never halts compilation; Initialise can run
// regardless of what Validate finds. Every issue is also sent through
// the configured Logger as a warning, matching the teacher's pattern of
// surfacing non-fatal problems through its LoggingObserver rather than
// an error return.
func Validate[M any](sm *StateMachine[M]) []ValidationIssue {
	var issues []ValidationIssue
	v := &validator[M]{logger: sm.config.Logger}
	v.checkState(sm, &issues)
	return issues
}

type validator[M any] struct {
	logger Logger
}

func (v *validator[M]) report(issues *[]ValidationIssue, element, message string) {
	*issues = append(*issues, ValidationIssue{Element: element, Message: message})
	if v.logger != nil {
		v.logger.Warn("%s: %s", element, message)
	}
}

func (v *validator[M]) checkState(s StateLike[M], issues *[]ValidationIssue) {
	for _, region := range s.Regions() {
		v.checkRegion(region, issues)
	}
}

func (v *validator[M]) checkRegion(r *Region[M], issues *[]ValidationIssue) {
	var initials, shallow, deep int

	for _, child := range r.Children() {
		switch t := child.(type) {
		case *PseudoState[M]:
			switch t.kind {
			case Initial:
				initials++
			case ShallowHistory:
				shallow++
			case DeepHistory:
				deep++
			}
			v.checkPseudoState(t, issues)
		case *FinalState[M]:
			if len(t.Outgoing()) > 0 {
				v.report(issues, t.QualifiedName(), "final state has outgoing transitions")
			}
		case *State[M]:
			v.checkState(t, issues)
			v.checkOutgoing(t, issues)
		}
	}

	if initials > 1 {
		v.report(issues, r.QualifiedName(), "region has more than one Initial pseudostate")
	}
	if shallow > 1 {
		v.report(issues, r.QualifiedName(), "region has more than one ShallowHistory pseudostate")
	}
	if deep > 1 {
		v.report(issues, r.QualifiedName(), "region has more than one DeepHistory pseudostate")
	}
}

func (v *validator[M]) checkPseudoState(p *PseudoState[M], issues *[]ValidationIssue) {
	switch p.kind {
	case Initial, ShallowHistory, DeepHistory:
		if len(p.out) != 1 {
			v.report(issues, p.QualifiedName(), "initial/history pseudostate must have exactly one outgoing transition")
		} else if p.out[0].guardSet {
			v.report(issues, p.QualifiedName(), "initial/history pseudostate's outgoing transition carries a non-trivial guard")
		}
	case Choice, Junction:
		elseCount := 0
		for _, t := range p.out {
			if t.isElse {
				elseCount++
			}
		}
		if elseCount > 1 {
			v.report(issues, p.QualifiedName(), "choice/junction has more than one else transition")
		}
		if len(p.out) == 0 {
			v.report(issues, p.QualifiedName(), "choice/junction has no outgoing transitions")
		}
	}
	v.checkOutgoing(p, issues)
}

func (v *validator[M]) checkOutgoing(vert Vertex[M], issues *[]ValidationIssue) {
	for _, t := range vert.Outgoing() {
		if t.kind != Local || t.target == nil {
			continue
		}
		if !isDescendantOf[M](t.target, vert) {
			v.report(issues, vert.QualifiedName(),
				fmt.Sprintf("local transition to %s is not a descendant of its source", t.target.QualifiedName()))
		}
	}
}

// isDescendantOf reports whether ancestor appears anywhere on target's
// ancestry path, target itself included (§7: "local transition with a
// non-descendant target").
func isDescendantOf[M any](target, ancestor Vertex[M]) bool {
	path := Ancestry[M](target)
	for _, v := range path {
		if sameVertex[M](v, ancestor) {
			return true
		}
	}
	return false
}
