package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("species index %d out of range", 99).Build()
	require.NotNil(t, err)
	assert.Equal(t, KindGeneric, err.Kind, "unset kind should default to generic")
	assert.False(t, err.Timestamp.IsZero())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"end of sequence", ErrEndOfSequence, ""},
		{"typed", Newf("no curve").Kind(KindUnknownCurve).Build(), KindUnknownCurve},
		{"untyped", stderrors.New("plain"), KindGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	t.Parallel()

	inner := Newf("site index 1.2 below breast height").Kind(KindSiteIndexTooSmall).Build()
	wrapped := stderrors.Join(stderrors.New("estimating"), inner)

	assert.True(t, IsKind(wrapped, KindSiteIndexTooSmall))
	assert.False(t, IsKind(wrapped, KindNoConvergence))
}

func TestEndOfSequenceIsNotAFailure(t *testing.T) {
	t.Parallel()

	// Traversal termination must stay distinguishable from every failure kind.
	assert.True(t, Is(ErrEndOfSequence, ErrEndOfSequence))
	for _, kind := range []Kind{
		KindUnknownSpecies, KindUnknownCurve, KindNoAnswer, KindGeneric,
	} {
		assert.False(t, IsKind(ErrEndOfSequence, kind), "kind %s", kind)
	}
}

func TestContextIsCopied(t *testing.T) {
	t.Parallel()

	err := Newf("no conversion").
		Kind(KindNoConversion).
		Context("source", "Fd").
		Context("target", "Hw").
		Build()

	ctx := err.GetContext()
	require.Equal(t, "Fd", ctx["source"])

	ctx["source"] = "mutated"
	assert.Equal(t, "Fd", err.GetContext()["source"], "context must not be externally mutable")
}
