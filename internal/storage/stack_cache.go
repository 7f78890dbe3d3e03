package storage

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cx-luo/molstack/internal/molecule"
)

// StackCache memoizes Materialize by its joined path string. LayerStorage
// is monotonic and base is immutable for the lifetime of a run, so a
// given path always materializes to the same molecule — the cache is
// sound for as long as the owning Materializer lives, which callers
// scope to one step (or one run) per §5.
//
// Concurrent reads are safe; a singleflight guard collapses concurrent
// materializations of the same path within one fan-out into a single
// computation, since Go gives us no free lock the way the Rust source's
// #[cached] macro does.
type StackCache struct {
	values sync.Map // string -> *molecule.MoleculeLayer
	group  singleflight.Group
}

func newStackCache() *StackCache {
	return &StackCache{}
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "/")
}

// Materializer ties a LayerStorage, an immutable base molecule and a
// StackCache together to resolve stack paths into concrete molecules.
type Materializer struct {
	storage *LayerStorage
	base    *molecule.MoleculeLayer
	cache   *StackCache

	// OnCacheHit/OnCacheMiss, when set, are called once per Materialize
	// of a non-empty path — the hook point the driver uses to wire
	// molstack_materialize_cache_{hits,misses}_total.
	OnCacheHit  func()
	OnCacheMiss func()
}

// NewMaterializer returns a Materializer scoped to storage and base. A
// fresh StackCache is created; callers that want cache reuse across
// steps should keep the Materializer around rather than constructing a
// new one per step.
func NewMaterializer(storage *LayerStorage, base *molecule.MoleculeLayer) *Materializer {
	return &Materializer{storage: storage, base: base, cache: newStackCache()}
}

// Materialize resolves path (a list of layer ids) against base:
// materialize([]) = base; materialize(xs ++ [last]) =
// layers[last].filter(materialize(xs)). The returned molecule is always
// a clone — callers may mutate it freely without corrupting the cache.
func (m *Materializer) Materialize(path []int) (*molecule.MoleculeLayer, error) {
	if len(path) == 0 {
		return m.base.Clone(), nil
	}

	key := pathKey(path)
	if cached, ok := m.cache.values.Load(key); ok {
		if m.OnCacheHit != nil {
			m.OnCacheHit()
		}
		return cached.(*molecule.MoleculeLayer).Clone(), nil
	}

	result, err, _ := m.cache.group.Do(key, func() (interface{}, error) {
		if cached, ok := m.cache.values.Load(key); ok {
			return cached.(*molecule.MoleculeLayer), nil
		}
		if m.OnCacheMiss != nil {
			m.OnCacheMiss()
		}
		parent, err := m.Materialize(path[:len(path)-1])
		if err != nil {
			return nil, err
		}
		lastID := path[len(path)-1]
		l, err := m.storage.ReadLayer(lastID)
		if err != nil {
			return nil, err
		}
		out, err := l.Filter(parent)
		if err != nil {
			return nil, errFilter(lastID, err)
		}
		m.cache.values.Store(key, out)
		return out, nil
	})
	if err != nil {
		// Errors are terminal for the path and must not poison the
		// cache for other callers retrying the same path later.
		return nil, err
	}
	return result.(*molecule.MoleculeLayer).Clone(), nil
}
