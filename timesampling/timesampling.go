// Package timesampling implements the Identity/Uniform/Cyclic/Acyclic
// sample-time tables and their archive-wide dedup table (spec §3, §4.5).
package timesampling

import "math"

// EquivalenceTolerance is the absolute tolerance under which two real
// values in a TimeSampling are considered equal (spec §3 "Equivalence").
const EquivalenceTolerance = 1e-9

// AcyclicTimePerCycle is the sentinel time-per-cycle value written for
// Acyclic samplings (f64::MAX / 32 in the reference).
const AcyclicTimePerCycle = math.MaxFloat64 / 32

// Kind distinguishes the four TimeSampling variants.
type Kind uint8

const (
	Identity Kind = iota
	Uniform
	Cyclic
	Acyclic
)

// TimeSampling describes how an animated property's sample indices map to
// time values.
type TimeSampling struct {
	Kind          Kind
	TimePerCycle  float64
	StartTime     float64   // Uniform only
	Times         []float64 // Cyclic (one cycle) or Acyclic (all samples)
}

// NewIdentity returns the canonical identity sampling: tpc=1.0, single time 0.0.
func NewIdentity() TimeSampling {
	return TimeSampling{Kind: Identity, TimePerCycle: 1.0, Times: []float64{0.0}}
}

// NewUniform returns a uniform sampling starting at start with period tpc.
func NewUniform(tpc, start float64) TimeSampling {
	return TimeSampling{Kind: Uniform, TimePerCycle: tpc, StartTime: start}
}

// NewCyclic returns a cyclic sampling: times repeat every tpc, all times
// expected to lie in [start, start+tpc).
func NewCyclic(tpc float64, times []float64) TimeSampling {
	return TimeSampling{Kind: Cyclic, TimePerCycle: tpc, Times: times}
}

// NewAcyclic returns an acyclic sampling over a strictly increasing time list.
func NewAcyclic(times []float64) TimeSampling {
	return TimeSampling{Kind: Acyclic, TimePerCycle: AcyclicTimePerCycle, Times: times}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= EquivalenceTolerance
}

// Equivalent reports whether t and o are the same variant with all reals
// equal within EquivalenceTolerance (spec §3 "Equivalence").
func (t TimeSampling) Equivalent(o TimeSampling) bool {
	if t.Kind != o.Kind {
		return false
	}
	if !nearlyEqual(t.TimePerCycle, o.TimePerCycle) {
		return false
	}
	switch t.Kind {
	case Identity:
		return true
	case Uniform:
		return nearlyEqual(t.StartTime, o.StartTime)
	case Cyclic, Acyclic:
		if len(t.Times) != len(o.Times) {
			return false
		}
		for i := range t.Times {
			if !nearlyEqual(t.Times[i], o.Times[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// storedTimes returns the time list as serialized on disk: a single
// [start] entry for Uniform, or Times verbatim for the other variants.
func (t TimeSampling) storedTimes() []float64 {
	if t.Kind == Uniform {
		return []float64{t.StartTime}
	}
	return t.Times
}

// Table is the archive-wide list of distinct TimeSamplings; entry 0 is
// always the identity sampling (spec §3 "Archive").
type Table struct {
	entries    []TimeSampling
	maxSamples []uint32
}

// NewTable returns a table seeded with the identity entry at index 0.
func NewTable() *Table {
	return &Table{
		entries:    []TimeSampling{NewIdentity()},
		maxSamples: []uint32{0},
	}
}

// Add returns the index of an existing entry equivalent to t, or appends a
// new one (spec §4.5).
func (tb *Table) Add(t TimeSampling) int {
	for i, e := range tb.entries {
		if e.Equivalent(t) {
			return i
		}
	}
	tb.entries = append(tb.entries, t)
	tb.maxSamples = append(tb.maxSamples, 0)
	return len(tb.entries) - 1
}

// ObserveSampleCount records that a property using time-sampling index idx
// emitted n samples, updating that entry's running max_samples.
func (tb *Table) ObserveSampleCount(idx int, n uint32) {
	if n > tb.maxSamples[idx] {
		tb.maxSamples[idx] = n
	}
}

// Len returns the number of entries in the table.
func (tb *Table) Len() int {
	return len(tb.entries)
}

// At returns the entry at idx.
func (tb *Table) At(idx int) TimeSampling {
	return tb.entries[idx]
}

// MaxSamples returns the largest observed sample count for idx.
func (tb *Table) MaxSamples(idx int) uint32 {
	return tb.maxSamples[idx]
}

// Entries exposes the table contents for serialization by the archive writer.
func (tb *Table) Entries() []TimeSampling {
	return tb.entries
}
