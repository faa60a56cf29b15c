package builder

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
)

// stubBuilder is a Builder that records nothing and always fails.
type stubBuilder struct {
	tag curve.Type
	id  string
}

func (s stubBuilder) CurveType() curve.Type { return s.tag }

func (s stubBuilder) Build([]instrument.Instrument, instructions.Instructions) (curve.Curve, error) {
	return nil, errors.New("stub " + s.id)
}

func TestDefault_ResolvesEveryShippedFamily(t *testing.T) {
	r := Default()
	assert.Equal(t, []curve.Type{curve.TypeIRS, curve.TypeRPISwapInflation}, r.Types())
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Sealed())

	// No cross-wiring: every builder serves the tag it is registered under.
	for _, tag := range r.Types() {
		b, err := r.Resolve(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, b.CurveType())
	}
}

func TestResolveBuilder_RPISwap(t *testing.T) {
	b, err := ResolveBuilder(curve.TypeRPISwapInflation)
	require.NoError(t, err)

	typed, ok := As[instrument.RPISwap, instructions.RPISwapCurve, *curve.RPISwapCurve](b)
	require.True(t, ok)
	assert.Equal(t, RPISwapBuilder{}, typed)

	_, ok = As[instrument.IRSwap, instructions.IRSwapCurve, *curve.IRSwapCurve](b)
	assert.False(t, ok, "RPI builder must not be recoverable as the IRS family")
}

func TestResolveBuilder_UnregisteredTag(t *testing.T) {
	b, err := ResolveBuilder(curve.TypeCreditSwap)
	require.Error(t, err)
	assert.Nil(t, b)

	var unknown *UnknownCurveTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, curve.TypeCreditSwap, unknown.Tag)
	assert.Contains(t, err.Error(), "CREDIT_SWAP")
	assert.True(t, IsUnknownCurveType(err))
	assert.Equal(t, CodeUnknownCurveType, ErrorCode(err))
}

func TestResolve_TagOutsideEnumeration(t *testing.T) {
	_, err := Default().Resolve("FX_FORWARD")
	var unknown *UnknownCurveTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, curve.Type("FX_FORWARD"), unknown.Tag)
}

func TestResolve_Idempotent(t *testing.T) {
	first, err := ResolveBuilder(curve.TypeIRS)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ResolveBuilder(curve.TypeIRS)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Same(t, Default(), Default())
}

func TestRegister_DuplicateIsAtomic(t *testing.T) {
	original := stubBuilder{tag: curve.TypeIRS, id: "original"}
	r, err := NewRegistry(original)
	require.NoError(t, err)

	err = r.Register(stubBuilder{tag: curve.TypeIRS, id: "intruder"})
	require.Error(t, err)

	var dup *DuplicateRegistrationError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, curve.TypeIRS, dup.Tag)
	assert.True(t, IsDuplicateRegistration(err))
	assert.Equal(t, CodeDuplicateRegistration, ErrorCode(err))

	got, err := r.Resolve(curve.TypeIRS)
	require.NoError(t, err)
	assert.Equal(t, original, got, "failed registration must not replace the existing builder")
	assert.Equal(t, 1, r.Len())
}

func TestNewRegistry_RejectsDuplicateTable(t *testing.T) {
	r, err := NewRegistry(
		stubBuilder{tag: curve.TypeIRS, id: "a"},
		stubBuilder{tag: curve.TypeIRS, id: "b"},
	)
	assert.Nil(t, r)
	assert.True(t, IsDuplicateRegistration(err))
}

func TestRegister_InvalidBuilders(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(stubBuilder{tag: "NOT_A_CURVE"}))
	assert.Equal(t, 0, r.Len())
}

func TestRegister_Sealed(t *testing.T) {
	err := Default().Register(stubBuilder{tag: curve.TypeCreditSwap})
	require.ErrorIs(t, err, ErrRegistrySealed)
	assert.Equal(t, CodeRegistrySealed, ErrorCode(err))

	_, err = Default().Resolve(curve.TypeCreditSwap)
	assert.True(t, IsUnknownCurveType(err), "sealed registry must be unchanged")
}

func TestMustRegister_Panics(t *testing.T) {
	r, err := NewRegistry(stubBuilder{tag: curve.TypeIRS})
	require.NoError(t, err)

	assert.Panics(t, func() { r.MustRegister(stubBuilder{tag: curve.TypeIRS}) })
	assert.NotPanics(t, func() { r.MustRegister(stubBuilder{tag: curve.TypeCreditSwap}) })
	assert.Equal(t, []curve.Type{curve.TypeCreditSwap, curve.TypeIRS}, r.Types())
}

func TestRegistry_ZeroValueBuilderIsFound(t *testing.T) {
	// RPISwapBuilder{} is a zero-size zero value; lookup must still find it.
	r, err := NewRegistry(Erase[instrument.RPISwap, instructions.RPISwapCurve, *curve.RPISwapCurve](RPISwapBuilder{}))
	require.NoError(t, err)

	b, err := r.Resolve(curve.TypeRPISwapInflation)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestRegistry_Build(t *testing.T) {
	c, err := Default().Build(curve.TypeIRS, []instrument.Instrument{
		instrument.IRSwap{Tenor: instrument.MustParseTenor("1Y"), Rate: 0.25},
	}, instructions.DefaultIRSwapCurve())
	require.NoError(t, err)
	assert.InDelta(t, 0.8, c.ValueAt(1), 1e-12)

	_, err = Default().Build(curve.TypeCreditSwap, nil, instructions.Generic{})
	assert.True(t, IsUnknownCurveType(err))
}

func TestRegistry_ConcurrentReadsAndWrites(t *testing.T) {
	r, err := NewRegistry(stubBuilder{tag: curve.TypeIRS})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b, err := r.Resolve(curve.TypeIRS)
				if assert.NoError(t, err) {
					assert.Equal(t, curve.TypeIRS, b.CurveType())
				}
				_ = r.Types()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Register(stubBuilder{tag: curve.TypeRPISwapInflation})
		_ = r.Register(stubBuilder{tag: curve.TypeCreditSwap})
	}()

	wg.Wait()
	assert.Equal(t, 3, r.Len())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, Code(""), ErrorCode(nil))
	assert.Equal(t, CodeInternal, ErrorCode(errors.New("disk full")))
	assert.Equal(t, CodeConstructionFailed, ErrorCode(
		fmt.Errorf("wrapped: %w", curve.NewMalformedInstrumentError(curve.TypeIRS, "no instruments supplied"))))
	assert.Equal(t, CodeUnknownCurveType, ErrorCode(
		fmt.Errorf("wrapped: %w", &UnknownCurveTypeError{Tag: curve.TypeCreditSwap})))
}
