package world

import "testing"

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry[*BlockType](4)
	idx1, err := r.Register(Stone)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	idx2, err := r.Register(Stone)
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if idx1 != idx2 {
		t.Fatalf("Register not idempotent: %d != %d", idx1, idx2)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryDuplicateNameRejected(t *testing.T) {
	r := NewRegistry[*BlockType](4)
	if _, err := r.Register(Stone); err != nil {
		t.Fatalf("Register: %v", err)
	}
	imposter := &BlockType{name: Stone.Name()}
	_, err := r.Register(imposter)
	if err == nil {
		t.Fatal("expected DuplicateName error for a distinct descriptor sharing a name")
	}
	var asErr *Error
	if !as(err, &asErr) || asErr.Kind != DuplicateName {
		t.Fatalf("expected DuplicateName error, got %v", err)
	}
}

func TestRegistryLegacyRoundTrip(t *testing.T) {
	r := NewRegistry[*BlockType](4)
	idx, err := r.Register(Stone)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, ok := r.LegacyToIndex(1, 0)
	if !ok || got != idx {
		t.Fatalf("LegacyToIndex(1,0) = (%d, %v), want (%d, true)", got, ok, idx)
	}
	id, meta, ok := r.IndexToLegacy(idx)
	if !ok || id != 1 || meta != 0 {
		t.Fatalf("IndexToLegacy(%d) = (%d, %d, %v), want (1, 0, true)", idx, id, meta, ok)
	}
}

func TestRegistryIndexOfUnregistered(t *testing.T) {
	r := NewRegistry[*BlockType](4)
	if _, ok := r.IndexOf(Stone); ok {
		t.Fatal("IndexOf reported an unregistered descriptor as present")
	}
}

func TestRegistryByNameAndAllOrdering(t *testing.T) {
	r := NewRegistry[*BlockType](4)
	_, _ = r.Register(Air)
	_, _ = r.Register(Stone)
	_, _ = r.Register(Dirt)

	idx, ok := r.ByName(Stone.Name())
	if !ok || r.Get(idx) != Stone {
		t.Fatalf("ByName(%q) did not resolve to Stone", Stone.Name())
	}
	all := r.All()
	if len(all) != 3 || all[0] != Air || all[1] != Stone || all[2] != Dirt {
		t.Fatalf("All() = %v, want insertion order [Air Stone Dirt]", all)
	}
}

// as is a tiny errors.As shim kept local to this test file to avoid pulling
// in the errors package just for one call site.
func as(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
