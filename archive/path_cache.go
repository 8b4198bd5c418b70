package archive

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ogawa-archive/alembic/errs"
	"github.com/ogawa-archive/alembic/object"
	"github.com/ogawa-archive/alembic/property"
)

// PathCache memoizes FindObject lookups by slash-separated object path,
// keyed on the xxhash of the path string rather than the string itself.
// Grounded on mebo's internal/hash.ID, which uses xxhash.Sum64 the same
// way: not for content verification, just as a cheap, collision-unlikely
// map key so repeated lookups of the same path skip the tree walk.
type PathCache struct {
	entries map[uint64]*object.IObject
}

// NewPathCache returns an empty cache.
func NewPathCache() *PathCache {
	return &PathCache{entries: make(map[uint64]*object.IObject)}
}

func pathKey(path string) uint64 {
	return xxhash.Sum64String(path)
}

func (c *PathCache) get(path string) (*object.IObject, bool) {
	o, ok := c.entries[pathKey(path)]
	return o, ok
}

func (c *PathCache) put(path string, o *object.IObject) {
	c.entries[pathKey(path)] = o
}

// FindObject resolves a slash-separated object path (e.g. "/geom/mesh1")
// from the archive root, walking one path segment at a time and caching
// the result under cache. A nil cache disables memoization.
func (r *Reader) FindObject(path string, cache *PathCache) (*object.IObject, error) {
	if cache != nil {
		if o, ok := cache.get(path); ok {
			return o, nil
		}
	}

	cur, err := r.Root()
	if err != nil {
		return nil, err
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		if cache != nil {
			cache.put(path, cur)
		}
		return cur, nil
	}

	lookup := property.PoolLookup(r.LookupMetadata)
	for _, seg := range segments {
		child, err := findChildByName(cur, seg, lookup)
		if err != nil {
			return nil, err
		}
		cur = child
	}

	if cache != nil {
		cache.put(path, cur)
	}
	return cur, nil
}

func findChildByName(parent *object.IObject, name string, lookup property.PoolLookup) (*object.IObject, error) {
	for i := 0; i < parent.NumChildren(); i++ {
		child, err := parent.Child(i, lookup)
		if err != nil {
			return nil, err
		}
		if child.Name() == name {
			return child, nil
		}
	}
	return nil, fmt.Errorf("%w: %q has no child %q", errs.ErrObjectNotFound, parent.Name(), name)
}
