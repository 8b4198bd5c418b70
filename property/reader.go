package property

import (
	"fmt"

	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
)

// PoolLookup resolves an interned metadata pool index to its canonical
// serialization; the archive reader supplies one backed by its metadata
// pool block.
type PoolLookup func(idx uint8) string

// ICompoundProperty is a lazy read-side view over a compound property's
// group plus its children's header block (spec §4.11).
type ICompoundProperty struct {
	r       *stream.Reader
	group   *tree.Group
	headers []HeaderFields
}

// OpenCompound opens the compound property whose group starts at pos.
func OpenCompound(r *stream.Reader, pos uint64) (*ICompoundProperty, error) {
	g, err := tree.OpenGroup(r, pos, false)
	if err != nil {
		return nil, err
	}

	n := g.Count() - 1
	if n < 0 {
		n = 0
	}

	var headers []HeaderFields
	if n > 0 {
		d, err := g.Data(n)
		if err != nil {
			return nil, err
		}
		raw, err := d.Bytes()
		if err != nil {
			return nil, err
		}

		headers = make([]HeaderFields, n)
		rest := raw
		for i := 0; i < n; i++ {
			headers[i], rest = DecodeHeader(rest)
		}
	}

	return &ICompoundProperty{r: r, group: g, headers: headers}, nil
}

// NumProperties returns the number of direct children.
func (c *ICompoundProperty) NumProperties() int {
	return len(c.headers)
}

// HeaderAt returns the decoded header fields of child i.
func (c *ICompoundProperty) HeaderAt(i int) HeaderFields {
	return c.headers[i]
}

// IndexByName returns the index of the first child with the given name.
func (c *ICompoundProperty) IndexByName(name string) (int, bool) {
	for i, h := range c.headers {
		if h.Name == name {
			return i, true
		}
	}
	return 0, false
}

// ResolveMetadata returns the metadata map for child i, resolving a pool
// index via lookup or decoding the inline serialization.
func (c *ICompoundProperty) ResolveMetadata(i int, lookup PoolLookup) *metadata.Map {
	h := c.headers[i]
	if h.MetaIndex == 0xFF {
		return metadata.Parse(h.InlineMeta)
	}
	if h.MetaIndex == 0 {
		return metadata.Parse("")
	}
	return metadata.Parse(lookup(h.MetaIndex))
}

// OpenChildCompound opens child i as a nested compound property.
func (c *ICompoundProperty) OpenChildCompound(i int) (*ICompoundProperty, error) {
	if c.headers[i].Kind != KindCompound {
		return nil, fmt.Errorf("%w: child %d is not a compound", errs.ErrTypeMismatch, i)
	}
	ptr, err := c.group.ChildOffset(i)
	if err != nil {
		return nil, err
	}
	return OpenCompound(c.r, tree.PointerOffset(ptr))
}

// OpenScalar opens child i as a scalar property.
func (c *ICompoundProperty) OpenScalar(i int) (*IScalarProperty, error) {
	h := c.headers[i]
	if h.Kind != KindScalar {
		return nil, fmt.Errorf("%w: child %d is not a scalar property", errs.ErrTypeMismatch, i)
	}
	ptr, err := c.group.ChildOffset(i)
	if err != nil {
		return nil, err
	}
	g, err := tree.OpenGroup(c.r, tree.PointerOffset(ptr), false)
	if err != nil {
		return nil, err
	}
	return &IScalarProperty{r: c.r, group: g, header: h}, nil
}

// OpenArray opens child i as an array (or scalar-like array) property.
func (c *ICompoundProperty) OpenArray(i int) (*IArrayProperty, error) {
	h := c.headers[i]
	if h.Kind != KindArray && h.Kind != KindScalarLikeArray {
		return nil, fmt.Errorf("%w: child %d is not an array property", errs.ErrTypeMismatch, i)
	}
	ptr, err := c.group.ChildOffset(i)
	if err != nil {
		return nil, err
	}
	g, err := tree.OpenGroup(c.r, tree.PointerOffset(ptr), false)
	if err != nil {
		return nil, err
	}
	return &IArrayProperty{r: c.r, group: g, header: h}, nil
}

// sampleEntryIndex maps a logical sample index to its position in the
// compressed child-pointer list, applying the first/last-changed clamp
// (spec §4.11 "Applies the first/last-changed-range clamp").
func sampleEntryIndex(i, first, last, numEntries int) int {
	switch {
	case numEntries == 0:
		return 0
	case first == 0:
		return 0
	case i < first:
		return 0
	case i > last:
		return numEntries - 1
	default:
		return 1 + (i - first)
	}
}

// IScalarProperty is a lazy read-side view over a scalar property's sample
// list.
type IScalarProperty struct {
	r      *stream.Reader
	group  *tree.Group
	header HeaderFields
}

func (s *IScalarProperty) NumSamples() int              { return int(s.header.NumSamples) }
func (s *IScalarProperty) TimeSamplingIndex() int        { return int(s.header.TimeSamplingIndex) }
func (s *IScalarProperty) Name() string                  { return s.header.Name }

// GetSample returns the payload bytes of logical sample i, applying the
// changed-range clamp.
func (s *IScalarProperty) GetSample(i int) ([]byte, error) {
	entry := sampleEntryIndex(i, int(s.header.FirstChanged), int(s.header.LastChanged), s.group.Count())
	d, err := s.group.Data(entry)
	if err != nil {
		return nil, err
	}
	raw, err := d.Bytes()
	if err != nil {
		return nil, err
	}
	return raw[16:], nil
}

// IArrayProperty is a lazy read-side view over an array property's sample
// list, which alternates [data, dims] pairs per written transition.
type IArrayProperty struct {
	r      *stream.Reader
	group  *tree.Group
	header HeaderFields
}

func (a *IArrayProperty) NumSamples() int       { return int(a.header.NumSamples) }
func (a *IArrayProperty) TimeSamplingIndex() int { return int(a.header.TimeSamplingIndex) }
func (a *IArrayProperty) Name() string           { return a.header.Name }

// GetSample returns the payload bytes and dimensions of logical sample i.
// When the stored dims child is the empty-data sentinel, dims is inferred
// as a single dimension equal to the element count (spec §4.11).
func (a *IArrayProperty) GetSample(i int) (data []byte, dims []uint64, err error) {
	numEntries := a.group.Count() / 2
	entry := sampleEntryIndex(i, int(a.header.FirstChanged), int(a.header.LastChanged), numEntries)

	d, err := a.group.Data(entry * 2)
	if err != nil {
		return nil, nil, err
	}
	raw, err := d.Bytes()
	if err != nil {
		return nil, nil, err
	}
	data = raw[16:]

	emptyDims, err := a.group.IsEmptyData(entry*2 + 1)
	if err != nil {
		return nil, nil, err
	}
	if emptyDims {
		esz := datatype.Pod(a.header.Pod).ElementSize() * int(a.header.Extent)
		if esz == 0 {
			dims = []uint64{uint64(len(data))}
		} else {
			dims = []uint64{uint64(len(data) / esz)}
		}
		return data, dims, nil
	}

	dd, err := a.group.Data(entry*2 + 1)
	if err != nil {
		return nil, nil, err
	}
	rawDims, err := dd.Bytes()
	if err != nil {
		return nil, nil, err
	}
	dims = make([]uint64, len(rawDims)/8)
	for j := range dims {
		dims[j] = readU64(rawDims[j*8:])
	}
	return data, dims, nil
}
