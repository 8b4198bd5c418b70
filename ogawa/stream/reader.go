package stream

import (
	"fmt"
	"os"
	"sync"

	"github.com/ogawa-archive/alembic/endian"
	"github.com/ogawa-archive/alembic/errs"
)

// Reader provides random access over an Ogawa file, backed by a memory map
// when available and falling back to buffered, cursor-based reads otherwise
// (spec §4.1).
//
// Multiple Readers may be opened over the same file concurrently. A single
// Reader backed by the mmap backend is lock-free for concurrent callers; one
// backed by the buffered backend is NOT, because each read moves the
// underlying file cursor — the buffered backend serializes its seek+read
// pairs on an internal mutex, so concurrent reads through it wait on each
// other (spec §5).
type Reader struct {
	backend backend
	size    uint64
}

type backend interface {
	size() uint64
	readAt(pos uint64, buf []byte) error
	slice(pos, length uint64) ([]byte, bool)
	close() error
}

// Open opens path for random access, preferring a memory map and falling
// back to buffered I/O when mapping isn't available.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrIo, err)
	}
	size := uint64(info.Size())

	if size > 0 {
		if mb, err := newMmapBackend(f, size); err == nil {
			return &Reader{backend: mb, size: size}, nil
		}
		// Mapping failed; fall through to buffered mode over the same fd.
	}

	return &Reader{backend: newBufferedBackend(f), size: size}, nil
}

// Size returns the total file size in bytes.
func (r *Reader) Size() uint64 {
	return r.size
}

// IsMmap reports whether this reader is backed by a memory map.
func (r *Reader) IsMmap() bool {
	_, ok := r.backend.(*mmapBackend)
	return ok
}

func (r *Reader) checkBounds(pos, length uint64) error {
	if pos+length > r.size {
		return fmt.Errorf("%w: %d", errs.ErrUnexpectedEof, pos+length)
	}

	return nil
}

// ReadBytes returns a copy of length bytes starting at pos.
func (r *Reader) ReadBytes(pos, length uint64) ([]byte, error) {
	if err := r.checkBounds(pos, length); err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	if err := r.backend.readAt(pos, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// ReadInto fills buf with bytes starting at pos.
func (r *Reader) ReadInto(pos uint64, buf []byte) error {
	if err := r.checkBounds(pos, uint64(len(buf))); err != nil {
		return err
	}

	return r.backend.readAt(pos, buf)
}

// Slice returns a zero-copy view into the mapped file. It only succeeds in
// mmap mode; buffered-mode callers get a wrapped errs.ErrIo (spec §4.1: "non-mmap
// callers requesting slice fail with an explicit kind").
func (r *Reader) Slice(pos, length uint64) ([]byte, error) {
	if err := r.checkBounds(pos, length); err != nil {
		return nil, err
	}

	b, ok := r.backend.slice(pos, length)
	if !ok {
		return nil, fmt.Errorf("%w: slice() requires memory-mapped mode", errs.ErrIo)
	}

	return b, nil
}

// ReadU16 reads a little-endian uint16 at pos.
func (r *Reader) ReadU16(pos uint64) (uint16, error) {
	b, err := r.ReadBytes(pos, 2)
	if err != nil {
		return 0, err
	}

	return endian.LE.Uint16(b), nil
}

// ReadU16BE reads a big-endian uint16 at pos (used only for the header version field).
func (r *Reader) ReadU16BE(pos uint64) (uint16, error) {
	b, err := r.ReadBytes(pos, 2)
	if err != nil {
		return 0, err
	}

	return endian.BE.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32 at pos.
func (r *Reader) ReadU32(pos uint64) (uint32, error) {
	b, err := r.ReadBytes(pos, 4)
	if err != nil {
		return 0, err
	}

	return endian.LE.Uint32(b), nil
}

// ReadU64 reads a little-endian uint64 at pos.
func (r *Reader) ReadU64(pos uint64) (uint64, error) {
	b, err := r.ReadBytes(pos, 8)
	if err != nil {
		return 0, err
	}

	return endian.LE.Uint64(b), nil
}

// ReadU8 reads a single byte at pos.
func (r *Reader) ReadU8(pos uint64) (uint8, error) {
	b, err := r.ReadBytes(pos, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Close releases the underlying file or mapping.
func (r *Reader) Close() error {
	return r.backend.close()
}

// bufferedBackend is the cursor-based fallback: every read Seeks then Reads,
// holding mu for the pair so concurrent reads through one Reader do not
// interleave their cursor moves.
type bufferedBackend struct {
	mu sync.Mutex
	f  *os.File
}

func newBufferedBackend(f *os.File) *bufferedBackend {
	return &bufferedBackend{f: f}
}

func (b *bufferedBackend) size() uint64 {
	info, err := b.f.Stat()
	if err != nil {
		return 0
	}

	return uint64(info.Size())
}

func (b *bufferedBackend) readAt(pos uint64, buf []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.f.Seek(int64(pos), 0); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}
	if _, err := readFull(b.f, buf); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return nil
}

func (b *bufferedBackend) slice(pos, length uint64) ([]byte, bool) {
	return nil, false
}

func (b *bufferedBackend) close() error {
	return b.f.Close()
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
