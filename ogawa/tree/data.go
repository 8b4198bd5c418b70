package tree

import "github.com/ogawa-archive/alembic/ogawa/stream"

// Data is an on-disk length-prefixed byte payload: a leaf of the Ogawa tree
// (spec §3 "Data block", §4.2).
type Data struct {
	r    *stream.Reader
	pos  uint64
	size uint64
}

// OpenData opens the data block at pos. pos == 0 is the empty-data sentinel
// (spec §3): it opens successfully with Size() == 0.
func OpenData(r *stream.Reader, pos uint64) (*Data, error) {
	if pos == 0 {
		return &Data{r: r, pos: 0, size: 0}, nil
	}

	size, err := r.ReadU64(pos)
	if err != nil {
		return nil, err
	}

	return &Data{r: r, pos: pos, size: size}, nil
}

// Pos returns the data block's file position (0 for the empty-data sentinel).
func (d *Data) Pos() uint64 {
	return d.pos
}

// Size returns the payload length in bytes.
func (d *Data) Size() uint64 {
	return d.size
}

// IsEmpty reports whether this is the empty-data sentinel.
func (d *Data) IsEmpty() bool {
	return d.pos == 0
}

// Bytes returns a copy of the payload.
func (d *Data) Bytes() ([]byte, error) {
	if d.pos == 0 {
		return nil, nil
	}

	return d.r.ReadBytes(d.pos+8, d.size)
}

// Slice returns a zero-copy view of the payload; only available in mmap mode.
func (d *Data) Slice() ([]byte, error) {
	if d.pos == 0 {
		return nil, nil
	}

	return d.r.Slice(d.pos+8, d.size)
}

// WriteData lays out a length-prefixed data block and returns its starting
// position. Empty input returns position 0, the empty-data sentinel.
func WriteData(w *stream.Writer, payload []byte) (uint64, error) {
	if len(payload) == 0 {
		return 0, nil
	}

	pos := w.Pos()
	if err := w.WriteU64LE(uint64(len(payload))); err != nil {
		return 0, err
	}
	if err := w.WriteBytes(payload); err != nil {
		return 0, err
	}

	return pos, nil
}
