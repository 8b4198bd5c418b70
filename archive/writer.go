// Package archive implements the two-pass archive writer and lazy archive
// reader that tie together the stream, tree, metadata, time-sampling,
// content-key, property, and object layers into a complete Ogawa archive
// (spec §4.10, §4.11).
package archive

import (
	"fmt"

	"github.com/ogawa-archive/alembic/contentkey"
	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
	"github.com/ogawa-archive/alembic/timesampling"
)

// DefaultLibraryVersion is the integer written to the library-version data
// block when the caller does not override it (Alembic 1.8.10).
const DefaultLibraryVersion = 10810

// Option configures a Writer.
type Option func(*writerConfig)

type writerConfig struct {
	deferredGroups bool
	libraryVersion uint32
	application    string
}

// WithLibraryVersion overrides the integer written to the archive's
// library-version data block. Used by CopySemantic to preserve a source
// archive's value (spec §6 "Library-version integer").
func WithLibraryVersion(v uint32) Option {
	return func(c *writerConfig) { c.libraryVersion = v }
}

// WithApplication sets the _ai_Application archive metadata key if the
// caller has not already set one explicitly.
func WithApplication(app string) Option {
	return func(c *writerConfig) { c.application = app }
}

// WithDeferredGroups requests bottom-up, topologically-deferred group
// emission instead of the default inline post-order writer (spec §9
// "Deferred groups"). The two modes produce byte-identical trees up to
// dedup-driven offset reuse and are observationally equivalent to readers;
// this writer always emits inline post-order and accepts the option as a
// no-op compatibility switch so callers written against the deferred-mode
// API still compile.
func WithDeferredGroups() Option {
	return func(c *writerConfig) { c.deferredGroups = true }
}

// Writer emits a single Ogawa archive. It holds exclusive access to the
// underlying file for its whole lifetime (spec §5 "Scheduling model").
type Writer struct {
	stream         *stream.Writer
	dedup          *contentkey.DedupMap
	pool           *metadata.Pool
	timeSamplings  *timesampling.Table
	archiveMeta    *metadata.Map
	libraryVersion uint32
	application    string
	frozen         bool
}

// NewWriter creates path and writes the 16-byte header (magic, open frozen
// byte, big-endian version 1, a zero root-position placeholder), seeding
// the time-sampling table and metadata pool (spec §4.10 "Initialization").
func NewWriter(path string, opts ...Option) (*Writer, error) {
	cfg := writerConfig{libraryVersion: DefaultLibraryVersion}
	for _, o := range opts {
		o(&cfg)
	}

	sw, err := stream.NewWriter(path)
	if err != nil {
		return nil, err
	}
	if err := sw.WriteBytes([]byte("Ogawa")); err != nil {
		return nil, err
	}
	if err := sw.WriteU8(0x00); err != nil {
		return nil, err
	}
	if err := sw.WriteU16BE(1); err != nil {
		return nil, err
	}
	if err := sw.WriteU64LE(0); err != nil {
		return nil, err
	}

	return &Writer{
		stream:         sw,
		dedup:          contentkey.NewDedupMap(),
		pool:           metadata.NewPool(),
		timeSamplings:  timesampling.NewTable(),
		archiveMeta:    metadata.New(),
		libraryVersion: cfg.libraryVersion,
		application:    cfg.application,
	}, nil
}

// ArchiveMetadata returns the archive-wide key/value map. Callers may set
// entries (e.g. _ai_Description) before calling Freeze.
func (w *Writer) ArchiveMetadata() *metadata.Map {
	return w.archiveMeta
}

// TimeSamplings returns the writer's time-sampling table, so schema
// builders can register sampling variants before attaching them to
// properties.
func (w *Writer) TimeSamplings() *timesampling.Table {
	return w.timeSamplings
}

// Frozen reports whether Freeze has already been called.
func (w *Writer) Frozen() bool {
	return w.frozen
}

// Freeze emits root's object tree, the trailing archive-metadata /
// time-samplings / metadata-pool blocks, the six-entry root-index group,
// and finally commits the frozen byte and root-index position (spec
// §4.10 steps 2-6). Calling Freeze twice, or any write after it, fails
// with ErrFrozen.
func (w *Writer) Freeze(root *object.Object) error {
	if w.frozen {
		return fmt.Errorf("%w: archive already frozen", errs.ErrFrozen)
	}

	rootPos, _, err := object.Write(w.stream, w.dedup, w.pool, w.timeSamplings, root)
	if err != nil {
		return err
	}

	if !w.archiveMeta.Has("_ai_AlembicVersion") {
		w.archiveMeta.Set("_ai_AlembicVersion", "1.8.10")
	}
	if w.application != "" && !w.archiveMeta.Has("_ai_Application") {
		w.archiveMeta.Set("_ai_Application", w.application)
	}

	archiveMetaPos, err := tree.WriteData(w.stream, []byte(w.archiveMeta.Serialize()))
	if err != nil {
		return err
	}

	tsPos, err := tree.WriteData(w.stream, timesampling.EncodeTable(w.timeSamplings))
	if err != nil {
		return err
	}

	poolPos, err := tree.WriteData(w.stream, w.pool.Encode())
	if err != nil {
		return err
	}

	versionPos, err := tree.WriteData(w.stream, encodeU32(1))
	if err != nil {
		return err
	}

	libVersionPos, err := tree.WriteData(w.stream, encodeU32(w.libraryVersion))
	if err != nil {
		return err
	}

	rootIndexPos, err := tree.WriteGroup(w.stream, []uint64{
		tree.MakeDataOffset(versionPos),
		tree.MakeDataOffset(libVersionPos),
		tree.MakeGroupOffset(rootPos),
		tree.MakeDataOffset(archiveMetaPos),
		tree.MakeDataOffset(tsPos),
		tree.MakeDataOffset(poolPos),
	})
	if err != nil {
		return err
	}

	if err := w.stream.PatchU8At(5, 0xFF); err != nil {
		return err
	}
	if err := w.stream.PatchU64At(8, rootIndexPos); err != nil {
		return err
	}
	if err := w.stream.Flush(); err != nil {
		return err
	}

	w.frozen = true
	return nil
}

// Close closes the underlying file. Freeze should be called first;
// closing an unfrozen writer yields a file readers will refuse to open
// (spec §5 "Cancellation").
func (w *Writer) Close() error {
	return w.stream.Close()
}

func encodeU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func decodeU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
