package world

import (
	"github.com/brentp/intintmap"
	"github.com/segmentio/fasthash/fnv1a"
)

// Descriptor is implemented by the static records a Registry can hold:
// *BlockType and *BiomeType. Identity is by pointer: two descriptors are
// the same entry iff they are the same static record: equality is identity,
// never a value comparison.
type Descriptor interface {
	// Name returns the namespace:key identifier of the descriptor.
	Name() string
}

// legacyKeyed is implemented by descriptors that additionally carry a
// legacy numeric (id, meta) pair used only at the Anvil boundary.
type legacyKeyed interface {
	legacyKey() (id uint16, meta uint8, ok bool)
}

// RuntimeIndex is a dense, process-lifetime-stable index assigned to a
// registered descriptor. Indices are contiguous from 0 and are never reused.
type RuntimeIndex uint32

// Registry is a bidirectional mapping between statically defined
// descriptors and compact runtime indices. A Registry is append-only: there
// is no removal operation. It is not safe for concurrent registration and
// lookup; callers finish registering before sharing an Environment
// across goroutines.
type Registry[T Descriptor] struct {
	byIndex []T
	byPtr   map[Descriptor]RuntimeIndex
	byName  map[string]RuntimeIndex
	// byNameHash maps a name's fnv1a hash to the index registered under it,
	// checked before byName so a name whose hash has never been seen skips
	// the exact string-keyed lookup entirely.
	byNameHash map[uint64]RuntimeIndex
	legacy     *intintmap.Map
}

// NewRegistry creates an empty registry. size is a capacity hint.
func NewRegistry[T Descriptor](size int) *Registry[T] {
	return &Registry[T]{
		byIndex:    make([]T, 0, size),
		byPtr:      make(map[Descriptor]RuntimeIndex, size),
		byName:     make(map[string]RuntimeIndex, size),
		byNameHash: make(map[uint64]RuntimeIndex, size),
		legacy:     intintmap.New(size, 0.6),
	}
}

// Register adds d to the registry, returning its runtime index. Calling
// Register twice with the same descriptor is idempotent and returns the
// same index both times. Registering a second, distinct descriptor under a
// name already held by another returns a DuplicateName error.
func (r *Registry[T]) Register(d T) (RuntimeIndex, error) {
	if idx, ok := r.byPtr[d]; ok {
		return idx, nil
	}
	h := fnv1a.HashString64(d.Name())
	if _, maybe := r.byNameHash[h]; maybe {
		if idx, ok := r.byName[d.Name()]; ok {
			return 0, newError("Registry.Register", DuplicateName, nil).withName(d.Name(), idx)
		}
	}
	idx := RuntimeIndex(len(r.byIndex))
	r.byIndex = append(r.byIndex, d)
	r.byPtr[d] = idx
	r.byName[d.Name()] = idx
	r.byNameHash[h] = idx

	if lk, ok := Descriptor(d).(legacyKeyed); ok {
		if id, meta, has := lk.legacyKey(); has {
			key := legacyPackedKey(id, meta)
			if _, exists := r.legacy.Get(key); !exists {
				r.legacy.Put(key, int64(idx))
			}
		}
	}
	return idx, nil
}

// MustRegister registers d and panics on error. Used for static,
// process-start registration where a DuplicateName indicates a programming
// error in the descriptor table itself.
func (r *Registry[T]) MustRegister(d T) RuntimeIndex {
	idx, err := r.Register(d)
	if err != nil {
		panic(err)
	}
	return idx
}

// IndexOf returns the runtime index of d, if registered.
func (r *Registry[T]) IndexOf(d T) (RuntimeIndex, bool) {
	idx, ok := r.byPtr[d]
	return idx, ok
}

// Get returns the descriptor registered at idx. It panics if idx is out of
// range, matching the "caller bug, surfaced" policy of OutOfBounds errors
// for programming mistakes rather than data errors.
func (r *Registry[T]) Get(idx RuntimeIndex) T {
	return r.byIndex[idx]
}

// Len returns the number of registered descriptors.
func (r *Registry[T]) Len() int { return len(r.byIndex) }

// ByName looks up a descriptor's runtime index by its namespace:key name.
func (r *Registry[T]) ByName(name string) (RuntimeIndex, bool) {
	idx, ok := r.byName[name]
	return idx, ok
}

// All iterates registered descriptors in insertion (== index) order.
func (r *Registry[T]) All() []T {
	return r.byIndex
}

// LegacyToIndex resolves a 1.2.5-style (id, meta) pair to a runtime index.
// It is used on the Anvil decode path, once per stored block, so the lookup
// goes straight through the int64-keyed intintmap rather than through a
// boxed Go map.
func (r *Registry[T]) LegacyToIndex(id uint16, meta uint8) (RuntimeIndex, bool) {
	v, ok := r.legacy.Get(legacyPackedKey(id, meta))
	return RuntimeIndex(v), ok
}

// IndexToLegacy is the inverse of LegacyToIndex, used when saving chunks
// back to Anvil format.
func (r *Registry[T]) IndexToLegacy(idx RuntimeIndex) (id uint16, meta uint8, ok bool) {
	d := r.byIndex[idx]
	lk, isLegacy := Descriptor(d).(legacyKeyed)
	if !isLegacy {
		return 0, 0, false
	}
	return lk.legacyKey()
}

func legacyPackedKey(id uint16, meta uint8) int64 {
	return int64(id)<<4 | int64(meta&0xF)
}

// withName attaches context to a DuplicateName error without changing its
// Kind, used only for the error message.
func (e *Error) withName(name string, existing RuntimeIndex) *Error {
	e.Err = fmtDuplicate(name, existing)
	return e
}
