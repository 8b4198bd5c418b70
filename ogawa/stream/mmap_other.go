//go:build !unix

package stream

import (
	"os"

	"github.com/ogawa-archive/alembic/errs"
)

// mmapBackend has no non-unix implementation; Open always falls back to the
// buffered backend on these platforms.
type mmapBackend struct{}

func newMmapBackend(f *os.File, size uint64) (*mmapBackend, error) {
	return nil, errs.ErrMmapFailed
}

func (m *mmapBackend) size() uint64                                  { return 0 }
func (m *mmapBackend) readAt(pos uint64, buf []byte) error           { return errs.ErrMmapFailed }
func (m *mmapBackend) slice(pos, length uint64) ([]byte, bool)       { return nil, false }
func (m *mmapBackend) close() error                                  { return nil }
