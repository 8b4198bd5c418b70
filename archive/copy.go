package archive

import (
	"github.com/ogawa-archive/alembic/datatype"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// CopySemantic opens srcPath and re-emits its full object hierarchy (every
// schema, every sample, verbatim bytes) into a fresh archive at dstPath,
// preserving the source's library-version integer. Unlike a raw byte copy
// it rebuilds every group from the in-memory property/object trees, so the
// result round-trips through the writer's own dedup and changed-range
// logic rather than reproducing the source file byte-for-byte.
func CopySemantic(srcPath, dstPath string) error {
	src, err := Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := NewWriter(dstPath, WithLibraryVersion(src.LibraryVersion()))
	if err != nil {
		return err
	}

	*dst.ArchiveMetadata() = *src.ArchiveMetadata().Clone()

	rootIObj, err := src.Root()
	if err != nil {
		return err
	}

	rootObj, err := copyObjectTree(src, rootIObj, dst)
	if err != nil {
		return err
	}

	if err := dst.Freeze(rootObj); err != nil {
		return err
	}
	return dst.Close()
}

func copyObjectTree(src *Reader, iobj *object.IObject, dst *Writer) (*object.Object, error) {
	obj := object.New(iobj.Name())
	*obj.Meta = *iobj.Metadata().Clone()

	props, err := iobj.Properties()
	if err != nil {
		return nil, err
	}
	rootProp, err := copyCompound(src, props, dst, "")
	if err != nil {
		return nil, err
	}
	obj.Properties = rootProp

	for i := 0; i < iobj.NumChildren(); i++ {
		childI, err := iobj.Child(i, src.LookupMetadata)
		if err != nil {
			return nil, err
		}
		childObj, err := copyObjectTree(src, childI, dst)
		if err != nil {
			return nil, err
		}
		obj.AddChild(childObj)
	}

	return obj, nil
}

func copyCompound(src *Reader, cp *property.ICompoundProperty, dst *Writer, name string) (*property.Property, error) {
	root := property.NewCompound(name)

	for i := 0; i < cp.NumProperties(); i++ {
		h := cp.HeaderAt(i)
		meta := cp.ResolveMetadata(i, src.LookupMetadata)
		newTsIndex := dst.TimeSamplings().Add(src.TimeSampling(int(h.TimeSamplingIndex)))

		switch h.Kind {
		case property.KindCompound:
			childCP, err := cp.OpenChildCompound(i)
			if err != nil {
				return nil, err
			}
			child, err := copyCompound(src, childCP, dst, h.Name)
			if err != nil {
				return nil, err
			}
			*child.Meta = *meta
			root.AddChild(child)

		case property.KindScalar:
			sp, err := cp.OpenScalar(i)
			if err != nil {
				return nil, err
			}
			child := property.NewScalar(h.Name, datatype.New(datatype.Pod(h.Pod), h.Extent))
			child.TimeSamplingIndex = newTsIndex
			*child.Meta = *meta
			for s := 0; s < sp.NumSamples(); s++ {
				b, err := sp.GetSample(s)
				if err != nil {
					return nil, err
				}
				child.AddScalarSample(append([]byte(nil), b...))
			}
			root.AddChild(child)

		case property.KindArray, property.KindScalarLikeArray:
			ap, err := cp.OpenArray(i)
			if err != nil {
				return nil, err
			}
			child := property.NewArray(h.Name, datatype.New(datatype.Pod(h.Pod), h.Extent), h.Kind == property.KindScalarLikeArray)
			child.TimeSamplingIndex = newTsIndex
			*child.Meta = *meta
			for s := 0; s < ap.NumSamples(); s++ {
				data, dims, err := ap.GetSample(s)
				if err != nil {
					return nil, err
				}
				child.AddArraySample(append([]byte(nil), data...), append([]uint64(nil), dims...))
			}
			root.AddChild(child)
		}
	}

	return root, nil
}
