package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func createArenaBody(t *testing.T, x float64) *RigidBody {
	t.Helper()

	rb, err := NewRigidBody(MustCircle(1), NewTransform(mgl64.Vec2{x, 0}), WithMaterial(testMaterial))
	if err != nil {
		t.Fatalf("NewRigidBody() error = %v", err)
	}
	return rb
}

func TestArena_InsertGet(t *testing.T) {
	var arena Arena
	bodyA := createArenaBody(t, 0)
	bodyB := createArenaBody(t, 1)

	ha := arena.Insert(bodyA)
	hb := arena.Insert(bodyB)

	if arena.Len() != 2 {
		t.Errorf("Len() = %d, want 2", arena.Len())
	}
	if got, ok := arena.Get(ha); !ok || got != bodyA {
		t.Errorf("Get(%v) = %p, %v, want %p", ha, got, ok, bodyA)
	}
	if got := arena.MustGet(hb); got != bodyB {
		t.Errorf("MustGet(%v) = %p, want %p", hb, got, bodyB)
	}
	if ha.Index() != 0 || hb.Index() != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", ha.Index(), hb.Index())
	}
}

func TestArena_RemoveInvalidatesHandle(t *testing.T) {
	var arena Arena
	h := arena.Insert(createArenaBody(t, 0))

	if !arena.Remove(h) {
		t.Fatal("Remove() = false for a live handle")
	}
	if arena.Remove(h) {
		t.Error("Remove() = true for a stale handle")
	}
	if _, ok := arena.Get(h); ok {
		t.Error("Get() succeeded on a stale handle")
	}
	if arena.Len() != 0 {
		t.Errorf("Len() = %d, want 0", arena.Len())
	}

	// Reusing the slot must not resurrect the old handle
	body := createArenaBody(t, 5)
	reused := arena.Insert(body)
	if reused.Index() != h.Index() {
		t.Errorf("slot not reused: index %d, want %d", reused.Index(), h.Index())
	}
	if reused == h {
		t.Error("reused slot kept the same generation")
	}
	if _, ok := arena.Get(h); ok {
		t.Error("old handle resolves to the new body")
	}
	if got, _ := arena.Get(reused); got != body {
		t.Errorf("Get(reused) = %p, want %p", got, body)
	}
}

func TestArena_GetOutOfRange(t *testing.T) {
	var arena Arena
	if _, ok := arena.Get(Handle{index: 3}); ok {
		t.Error("Get() succeeded on an empty arena")
	}
}

func TestArena_MustGetPanicsOnStaleHandle(t *testing.T) {
	var arena Arena
	h := arena.Insert(createArenaBody(t, 0))
	arena.Remove(h)

	defer func() {
		if recover() == nil {
			t.Error("MustGet() did not panic on a stale handle")
		}
	}()
	arena.MustGet(h)
}

func TestArena_Pair(t *testing.T) {
	var arena Arena
	bodyA := createArenaBody(t, 0)
	bodyB := createArenaBody(t, 1)
	ha := arena.Insert(bodyA)
	hb := arena.Insert(bodyB)

	a, b := arena.Pair(ha, hb)
	if a != bodyA || b != bodyB {
		t.Errorf("Pair() = %p, %p, want %p, %p", a, b, bodyA, bodyB)
	}

	defer func() {
		if recover() == nil {
			t.Error("Pair() did not panic when borrowing the same body twice")
		}
	}()
	arena.Pair(ha, ha)
}

func TestArena_IterationOrder(t *testing.T) {
	var arena Arena
	handles := make([]Handle, 4)
	for i := range handles {
		handles[i] = arena.Insert(createArenaBody(t, float64(i)))
	}
	arena.Remove(handles[1])

	got := arena.Handles()
	want := []Handle{handles[0], handles[2], handles[3]}
	if len(got) != len(want) {
		t.Fatalf("Handles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Handles()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	var xs []float64
	arena.Each(func(h Handle, body *RigidBody) {
		xs = append(xs, body.Transform.Position.X())
	})
	if len(xs) != 3 || xs[0] != 0 || xs[1] != 2 || xs[2] != 3 {
		t.Errorf("Each() visited %v, want [0 2 3]", xs)
	}
}

func TestHandle_String(t *testing.T) {
	if got := (Handle{index: 4, generation: 2}).String(); got != "body#4.2" {
		t.Errorf("String() = %q, want %q", got, "body#4.2")
	}
}
