package archive

import (
	"fmt"

	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/metadata"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/ogawa/stream"
	"github.com/ogawa-archive/alembic/ogawa/tree"
	"github.com/ogawa-archive/alembic/timesampling"
)

// Reader opens a frozen Ogawa archive for lazy reading (spec §4.11).
type Reader struct {
	stream         *stream.Reader
	rootObjPos     uint64
	archiveMeta    *metadata.Map
	timeSamplings  []timesampling.TimeSampling
	maxSamples     []uint32
	pool           []string
	libraryVersion uint32
}

// Open validates the header (magic, frozen byte, version) and parses the
// root-index group's six entries.
func Open(path string) (*Reader, error) {
	r, err := stream.Open(path)
	if err != nil {
		return nil, err
	}

	magic, err := r.ReadBytes(0, 5)
	if err != nil {
		return nil, err
	}
	if string(magic) != "Ogawa" {
		return nil, errs.ErrInvalidMagic
	}

	frozen, err := r.ReadU8(5)
	if err != nil {
		return nil, err
	}
	if frozen != 0xFF {
		return nil, fmt.Errorf("%w: archive is not frozen", errs.ErrFrozen)
	}

	version, err := r.ReadU16BE(6)
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	rootIndexPos, err := r.ReadU64(8)
	if err != nil {
		return nil, err
	}

	rootIndex, err := tree.OpenGroup(r, rootIndexPos, false)
	if err != nil {
		return nil, err
	}
	if rootIndex.Count() != 6 {
		return nil, fmt.Errorf("%w: root index has %d entries, want 6", errs.ErrTypeMismatch, rootIndex.Count())
	}

	libVersionData, err := rootIndex.Data(1)
	if err != nil {
		return nil, err
	}
	libVersionBytes, err := libVersionData.Bytes()
	if err != nil {
		return nil, err
	}
	var libraryVersion uint32
	if len(libVersionBytes) == 4 {
		libraryVersion = decodeU32(libVersionBytes)
	}

	rootObjPtr, err := rootIndex.ChildOffset(2)
	if err != nil {
		return nil, err
	}

	archiveMetaData, err := rootIndex.Data(3)
	if err != nil {
		return nil, err
	}
	archiveMetaBytes, err := archiveMetaData.Bytes()
	if err != nil {
		return nil, err
	}
	archiveMeta := metadata.Parse(string(archiveMetaBytes))

	tsData, err := rootIndex.Data(4)
	if err != nil {
		return nil, err
	}
	tsBytes, err := tsData.Bytes()
	if err != nil {
		return nil, err
	}
	tsEntries, maxSamples := timesampling.DecodeTable(tsBytes)
	if len(tsEntries) == 0 {
		tsEntries = []timesampling.TimeSampling{timesampling.NewIdentity()}
		maxSamples = []uint32{0}
	}

	poolData, err := rootIndex.Data(5)
	if err != nil {
		return nil, err
	}
	poolBytes, err := poolData.Bytes()
	if err != nil {
		return nil, err
	}
	pool := metadata.DecodePool(poolBytes)

	return &Reader{
		stream:         r,
		rootObjPos:     tree.PointerOffset(rootObjPtr),
		archiveMeta:    archiveMeta,
		timeSamplings:  tsEntries,
		maxSamples:     maxSamples,
		pool:           pool,
		libraryVersion: libraryVersion,
	}, nil
}

// Root opens the archive's root object.
func (r *Reader) Root() (*object.IObject, error) {
	return object.OpenObject(r.stream, r.rootObjPos, "", nil)
}

// ArchiveMetadata returns the archive-wide key/value map.
func (r *Reader) ArchiveMetadata() *metadata.Map {
	return r.archiveMeta
}

// TimeSampling returns the time-sampling table entry at idx.
func (r *Reader) TimeSampling(idx int) timesampling.TimeSampling {
	return r.timeSamplings[idx]
}

// NumTimeSamplings returns the number of entries in the time-sampling table.
func (r *Reader) NumTimeSamplings() int {
	return len(r.timeSamplings)
}

// LibraryVersion returns the integer library-version value.
func (r *Reader) LibraryVersion() uint32 {
	return r.libraryVersion
}

// LookupMetadata resolves a metadata pool index to its serialization; it
// has the property.PoolLookup / object facade signature so it can be
// passed directly to Child/ResolveMetadata calls.
func (r *Reader) LookupMetadata(idx uint8) string {
	if idx == 0 || int(idx) > len(r.pool) {
		return ""
	}
	return r.pool[idx-1]
}

// Close closes the underlying stream.
func (r *Reader) Close() error {
	return r.stream.Close()
}
