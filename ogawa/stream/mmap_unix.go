//go:build unix

package stream

import (
	"fmt"
	"os"

	"github.com/ogawa-archive/alembic/errs"
	"golang.org/x/sys/unix"
)

// mmapBackend maps the whole file read-only and serves Slice as a genuine
// zero-copy view into that mapping, the capability spec §4.1 requires and
// golang.org/x/exp/mmap's ReaderAt (which hides its backing slice) can't
// provide.
type mmapBackend struct {
	f    *os.File
	data []byte
}

func newMmapBackend(f *os.File, size uint64) (*mmapBackend, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMmapFailed, err)
	}

	return &mmapBackend{f: f, data: data}, nil
}

func (m *mmapBackend) size() uint64 {
	return uint64(len(m.data))
}

func (m *mmapBackend) readAt(pos uint64, buf []byte) error {
	n := copy(buf, m.data[pos:pos+uint64(len(buf))])
	if n != len(buf) {
		return fmt.Errorf("%w: %d", errs.ErrUnexpectedEof, pos+uint64(len(buf)))
	}

	return nil
}

func (m *mmapBackend) slice(pos, length uint64) ([]byte, bool) {
	return m.data[pos : pos+length], true
}

func (m *mmapBackend) close() error {
	if err := unix.Munmap(m.data); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrIo, err)
	}

	return m.f.Close()
}
