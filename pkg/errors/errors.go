// Package errors provides structured error handling for the weft
// reconciliation engine.
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of a reconciliation error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindShape indicates a programming-error signal: a declared view tree
	// whose shape reconciliation cannot safely converge, such as a
	// single-node combinator applied to a fragment, or a subtree holder
	// whose presenter type no longer matches its slot.
	KindShape
	// KindStore indicates an inconsistency observed in the scene store,
	// such as multiple roots where exactly one was expected.
	KindStore
	// KindBuild indicates a failure recovered from a presenter build.
	KindBuild
	// KindPanic indicates a recovered panic outside of a subtree build.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindStore:
		return "store"
	case KindBuild:
		return "build"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ReconcileError represents a structured error raised while reconciling a
// view tree against the scene store.
type ReconcileError struct {
	// Op is the operation that failed (e.g., "view.InsertBundle").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Node is the scene node the operation was scoped to, if any.
	// Stored as uint64 to avoid an import cycle with pkg/scene.
	Node uint64
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReconcileError) Error() string {
	if e.Node != 0 {
		return fmt.Sprintf("%s [%s] node=%d: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// Shape constructs a KindShape programming-error signal. Callers panic with
// the returned error; the reconciliation driver recovers it at the subtree
// boundary and abandons that subtree for the cycle.
func Shape(op string, format string, args ...any) *ReconcileError {
	return &ReconcileError{
		Op:         op,
		Kind:       KindShape,
		Err:        fmt.Errorf(format, args...),
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// Store constructs a KindStore error describing a scene-store inconsistency.
// Store errors are reported and logged but never abort a cycle.
func Store(op string, format string, args ...any) *ReconcileError {
	return &ReconcileError{
		Op:        op,
		Kind:      KindStore,
		Err:       fmt.Errorf(format, args...),
		Timestamp: time.Now(),
	}
}
