// Package metadata implements ordered key-value maps with canonical
// serialization, and the archive-wide interned pool keyed by that
// serialization (spec §4.3).
package metadata

import "strings"

// InlineIndex is the sentinel pool index meaning "serialization follows
// inline at the caller's header site" rather than a pool lookup.
const InlineIndex = 0xFF

// MaxPoolSize is the largest number of reusable pool entries (indices
// 1..=254); index 0 is reserved for the empty map and 0xFF is reserved
// for the inline escape.
const MaxPoolSize = 254

// entry is one ordered key-value pair.
type entry struct {
	key, value string
}

// Map is an ordered sequence of key-value pairs. The zero value is an
// empty map.
type Map struct {
	entries []entry
}

// New returns an empty Map.
func New() *Map {
	return &Map{}
}

// Set appends a key-value pair, preserving insertion order even if the key
// was set before (Alembic metadata maps do not dedupe keys).
func (m *Map) Set(key, value string) *Map {
	m.entries = append(m.entries, entry{key, value})
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get returns the value of the last entry with the given key, if any.
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].key == key {
			return m.entries[i].value, true
		}
	}
	return "", false
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	return Parse(m.Serialize())
}

// Has reports whether a key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Serialize renders the canonical form k1=v1;k2=v2;... with no trailing
// semicolon (spec §3 "Metadata").
func (m *Map) Serialize() string {
	if m.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		b.WriteString(e.value)
	}
	return b.String()
}

// Parse reconstructs a Map from its canonical serialization. The empty
// string parses to an empty map.
func Parse(s string) *Map {
	m := New()
	if s == "" {
		return m
	}
	for _, pair := range strings.Split(s, ";") {
		if pair == "" {
			continue
		}
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			m.Set(pair[:idx], pair[idx+1:])
		} else {
			m.Set(pair, "")
		}
	}
	return m
}

// Pool is the archive-wide intern table of metadata serializations (spec
// §4.3). Index 0 is always the empty map and is never stored explicitly.
type Pool struct {
	bySerialization map[string]uint8
	serializations  []string // 1-indexed: serializations[0] holds pool index 1
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{bySerialization: make(map[string]uint8)}
}

// Add interns m and returns its pool index: 0 for the empty map, the
// existing or newly assigned index (1..=254) when it fits, or InlineIndex
// (0xFF) when the pool is full or the serialization exceeds 255 bytes --
// in that case the caller is responsible for emitting the serialization
// inline at its header site.
func (p *Pool) Add(m *Map) (index uint8, serialization string) {
	s := m.Serialize()
	if s == "" {
		return 0, ""
	}
	if idx, ok := p.bySerialization[s]; ok {
		return idx, s
	}
	if len(p.serializations) >= MaxPoolSize || len(s) > 255 {
		return InlineIndex, s
	}

	idx := uint8(len(p.serializations) + 1)
	p.serializations = append(p.serializations, s)
	p.bySerialization[s] = idx
	return idx, s
}

// Len returns the number of interned entries (excludes index 0).
func (p *Pool) Len() int {
	return len(p.serializations)
}

// Serialization returns the serialized string stored at pool index idx
// (1-based). idx == 0 yields the empty string.
func (p *Pool) Serialization(idx uint8) string {
	if idx == 0 || int(idx) > len(p.serializations) {
		return ""
	}
	return p.serializations[idx-1]
}

// Encode packs the pool as the sequence [u8 len][len bytes]... for indices
// 1..=Len(); index 0 is never emitted (spec §4.3).
func (p *Pool) Encode() []byte {
	var out []byte
	for _, s := range p.serializations {
		out = append(out, byte(len(s)))
		out = append(out, s...)
	}
	return out
}

// DecodePool parses a pool-encoded byte block back into the list of
// serializations, indexable as pool index i+1.
func DecodePool(data []byte) []string {
	var out []string
	for len(data) > 0 {
		n := int(data[0])
		data = data[1:]
		if n > len(data) {
			break
		}
		out = append(out, string(data[:n]))
		data = data[n:]
	}
	return out
}
