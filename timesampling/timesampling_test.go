package timesampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity_Defaults(t *testing.T) {
	id := NewIdentity()
	require.Equal(t, Identity, id.Kind)
	require.Equal(t, 1.0, id.TimePerCycle)
	require.Equal(t, []float64{0.0}, id.Times)
}

func TestEquivalent_WithinTolerance(t *testing.T) {
	a := NewUniform(1.0/24.0, 0.0)
	b := NewUniform(1.0/24.0+1e-10, 0.0)
	require.True(t, a.Equivalent(b))

	c := NewUniform(1.0/24.0+1e-6, 0.0)
	require.False(t, a.Equivalent(c))
}

func TestEquivalent_DifferentKinds(t *testing.T) {
	a := NewUniform(1.0, 0.0)
	b := NewCyclic(1.0, []float64{0.0})
	require.False(t, a.Equivalent(b))
}

func TestTable_AddDedupesEquivalentEntries(t *testing.T) {
	tb := NewTable()
	require.Equal(t, 1, tb.Len())

	i1 := tb.Add(NewUniform(1.0/24.0, 0.0))
	require.Equal(t, 1, i1)

	i2 := tb.Add(NewUniform(1.0/24.0, 0.0))
	require.Equal(t, i1, i2)

	i3 := tb.Add(NewUniform(1.0/12.0, 0.0))
	require.Equal(t, 2, i3)
	require.Equal(t, 3, tb.Len())
}

func TestTable_ObserveSampleCount(t *testing.T) {
	tb := NewTable()
	idx := tb.Add(NewUniform(1.0, 0.0))

	tb.ObserveSampleCount(idx, 5)
	tb.ObserveSampleCount(idx, 3)
	require.Equal(t, uint32(5), tb.MaxSamples(idx))

	tb.ObserveSampleCount(idx, 10)
	require.Equal(t, uint32(10), tb.MaxSamples(idx))
}

func TestEncodeDecodeTable_RoundTrip(t *testing.T) {
	tb := NewTable()
	uIdx := tb.Add(NewUniform(1.0/24.0, 0.0))
	tb.ObserveSampleCount(uIdx, 10)
	cIdx := tb.Add(NewCyclic(1.0, []float64{0.0, 0.25, 0.5, 0.75}))
	tb.ObserveSampleCount(cIdx, 40)
	aIdx := tb.Add(NewAcyclic([]float64{0.0, 0.1, 0.5}))
	tb.ObserveSampleCount(aIdx, 3)

	encoded := EncodeTable(tb)
	entries, maxSamples := DecodeTable(encoded)

	require.Len(t, entries, 4)
	require.True(t, entries[0].Equivalent(NewIdentity()))
	require.True(t, entries[uIdx].Equivalent(NewUniform(1.0/24.0, 0.0)))
	require.True(t, entries[cIdx].Equivalent(NewCyclic(1.0, []float64{0.0, 0.25, 0.5, 0.75})))
	require.True(t, entries[aIdx].Equivalent(NewAcyclic([]float64{0.0, 0.1, 0.5})))

	require.Equal(t, uint32(0), maxSamples[0])
	require.Equal(t, uint32(10), maxSamples[uIdx])
	require.Equal(t, uint32(40), maxSamples[cIdx])
	require.Equal(t, uint32(3), maxSamples[aIdx])
}
