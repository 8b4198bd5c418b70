// Package stream implements the append-only writer and random-access reader
// that sit beneath the Ogawa group/data tree (spec §4.1).
package stream

import (
	"fmt"
	"os"

	"github.com/ogawa-archive/alembic/endian"
	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/internal/pool"
)

// Writer is an append-only byte stream over a file.
//
// Appends accumulate in a pooled, amortized-growth buffer (internal/pool)
// instead of issuing one os.File.Write per call: an archive's write
// workload is dominated by many small property-sample and header payloads,
// the same "many small payloads" shape the buffer's growth strategy is
// tuned for. The buffer is flushed to the file before any seek-based write
// (PatchU8At/PatchU64At) or on Flush/Close, so on-disk bytes are always
// consistent with Pos() at those points.
//
// The only seeks permitted after initial emission are (a) patching the
// frozen byte and (b) patching the root-index position slot in the header
// (spec §4.1); both are exposed through PatchU8At/PatchU64At rather than a general Seek,
// so the append-only discipline can't be violated by accident the way a
// bare *os.File can be.
type Writer struct {
	f   *os.File
	pos uint64
	buf *pool.ByteBuffer
}

// NewWriter creates a Writer that appends to a freshly truncated file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return &Writer{f: f, buf: pool.NewByteBuffer(pool.DefaultSize)}, nil
}

// Pos returns the current append position (== number of bytes written so far).
func (w *Writer) Pos() uint64 {
	return w.pos
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) error {
	return w.WriteBytes([]byte{v})
}

// WriteU16LE appends v as two little-endian bytes.
func (w *Writer) WriteU16LE(v uint16) error {
	var b [2]byte
	endian.LE.PutUint16(b[:], v)

	return w.WriteBytes(b[:])
}

// WriteU16BE appends v as two big-endian bytes (used only for the header's version field).
func (w *Writer) WriteU16BE(v uint16) error {
	var b [2]byte
	endian.BE.PutUint16(b[:], v)

	return w.WriteBytes(b[:])
}

// WriteU64LE appends v as eight little-endian bytes.
func (w *Writer) WriteU64LE(v uint64) error {
	var b [8]byte
	endian.LE.PutUint64(b[:], v)

	return w.WriteBytes(b[:])
}

// WriteBytes appends raw bytes to the pending buffer and advances the
// position, flushing to the file once the buffer crosses its default size.
func (w *Writer) WriteBytes(p []byte) error {
	w.buf.Write(p)
	w.pos += uint64(len(p))
	if w.buf.Len() >= pool.DefaultSize {
		return w.flushBuffer()
	}

	return nil
}

// flushBuffer writes any pending buffered bytes to the file and resets the
// buffer; it is a no-op if nothing is pending.
func (w *Writer) flushBuffer() error {
	if w.buf.Len() == 0 {
		return nil
	}
	if _, err := w.f.Write(w.buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}
	w.buf.Reset()

	return nil
}

// PatchU8At overwrites a single byte at an already-written position.
//
// Used exactly once by the archive writer: the frozen byte (header offset
// 5) and nowhere else — kept generic for symmetry with PatchU64At.
func (w *Writer) PatchU8At(pos uint64, v uint8) error {
	if err := w.flushBuffer(); err != nil {
		return err
	}
	_, err := w.f.WriteAt([]byte{v}, int64(pos))
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return nil
}

// PatchU64At overwrites eight little-endian bytes at an already-written
// position. Used to fill in the root-index position once it's known (spec §4.10 step 6).
func (w *Writer) PatchU64At(pos uint64, v uint64) error {
	if err := w.flushBuffer(); err != nil {
		return err
	}
	var b [8]byte
	endian.LE.PutUint64(b[:], v)
	if _, err := w.f.WriteAt(b[:], int64(pos)); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return nil
}

// Flush writes any pending buffered bytes and syncs the file to stable storage.
func (w *Writer) Flush() error {
	if err := w.flushBuffer(); err != nil {
		return err
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return nil
}

// Close flushes any pending buffered bytes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.flushBuffer(); err != nil {
		_ = w.f.Close()
		return err
	}

	return w.f.Close()
}
