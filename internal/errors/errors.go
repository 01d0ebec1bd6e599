// Package errors provides typed domain errors for site index computation.
//
// Every fallible operation in the module returns either a valid result or an
// error carrying exactly one Kind from the closed set below. Callers branch on
// kinds with IsKind or KindOf instead of pattern-matching on message strings
// or magic negative codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"time"
)

// Kind identifies the failure class of a domain error.
type Kind string

const (
	KindUnknownSpecies    Kind = "unknown-species"
	KindUnknownCurve      Kind = "unknown-curve"
	KindUnknownSiteClass  Kind = "unknown-site-class"
	KindUnknownFizZone    Kind = "unknown-fiz-zone"
	KindUnknownAgeType    Kind = "unknown-age-type"
	KindInvalidEstabType  Kind = "invalid-establishment-type"
	KindSiteIndexTooSmall Kind = "site-index-too-small"
	KindNoDirectInverse   Kind = "no-direct-inverse"
	KindNoConvergence     Kind = "no-convergence"
	KindNoAnswer          Kind = "no-answer"
	KindNoConversion      Kind = "no-conversion-defined"
	KindGeneric           Kind = "generic"
)

// ErrEndOfSequence terminates species and curve traversal. It is a normal
// control-flow signal, never a failure: it carries no Kind and must be checked
// with errors.Is before any kind inspection.
var ErrEndOfSequence = stderrors.New("end of sequence")

// DomainError wraps an underlying error with a failure kind and optional
// structured context describing the inputs that produced it.
type DomainError struct {
	Err       error
	Kind      Kind
	Context   map[string]any
	Timestamp time.Time
}

// Error implements the error interface.
func (de *DomainError) Error() string {
	return de.Err.Error()
}

// Unwrap implements the error unwrapping interface.
func (de *DomainError) Unwrap() error {
	return de.Err
}

// Is reports kind equality when the target is also a DomainError, and falls
// back to wrapped-chain comparison otherwise.
func (de *DomainError) Is(target error) bool {
	if other, ok := target.(*DomainError); ok {
		return de.Kind == other.Kind
	}
	return stderrors.Is(de.Err, target)
}

// GetContext returns a copy of the context map to prevent external mutation.
func (de *DomainError) GetContext() map[string]any {
	if de.Context == nil {
		return nil
	}
	contextCopy := make(map[string]any, len(de.Context))
	maps.Copy(contextCopy, de.Context)
	return contextCopy
}

// Builder provides a fluent interface for constructing domain errors.
type Builder struct {
	err     error
	kind    Kind
	context map[string]any
}

// New starts building a domain error around err.
func New(err error) *Builder {
	return &Builder{err: err}
}

// Newf starts building a domain error around a formatted message.
func Newf(format string, args ...any) *Builder {
	return New(fmt.Errorf(format, args...))
}

// Kind sets the failure kind.
func (b *Builder) Kind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// Context attaches a key/value pair describing the failing input.
func (b *Builder) Context(key string, value any) *Builder {
	if b.context == nil {
		b.context = make(map[string]any)
	}
	b.context[key] = value
	return b
}

// Build finalizes the error. An unset kind defaults to KindGeneric.
func (b *Builder) Build() *DomainError {
	kind := b.kind
	if kind == "" {
		kind = KindGeneric
	}
	return &DomainError{
		Err:       b.err,
		Kind:      kind,
		Context:   b.context,
		Timestamp: time.Now(),
	}
}

// KindOf returns the Kind carried anywhere in err's chain, or KindGeneric if
// err is non-nil but untyped. A nil err and ErrEndOfSequence both report the
// empty Kind.
func KindOf(err error) Kind {
	if err == nil || stderrors.Is(err, ErrEndOfSequence) {
		return ""
	}
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return KindGeneric
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Re-exported stdlib helpers so callers need a single errors import.

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
