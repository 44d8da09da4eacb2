// Package uml implements the core of a hierarchical, event-driven finite
// state machine engine following UML State Machine semantics: composite
// and orthogonal regions, entry/exit behavior, completion transitions,
// pseudostates (initial, shallow/deep history, choice, junction,
// terminate), and internal/local/external transitions.
//
// A model is built once via the fluent constructors in state.go,
// pseudostate.go and transition.go, then compiled with Initialise before
// any instance can be evaluated against it. Evaluate drives a single
// instance through one message dispatch, synchronously.
package uml
