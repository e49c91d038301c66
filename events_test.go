package impulse

import (
	"testing"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/collide"
	"github.com/akmonengine/impulse/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// createTestHandles inserts n bodies into an arena and returns their handles
func createTestHandles(t *testing.T, n int) []actor.Handle {
	t.Helper()

	var arena actor.Arena
	handles := make([]actor.Handle, n)
	for i := range handles {
		handles[i] = arena.Insert(createCircle(t, mgl64.Vec2{float64(i), 0}, 1))
	}
	return handles
}

// createTestManifold creates a touching manifold for testing
func createTestManifold(bodyA, bodyB actor.Handle) *constraint.Manifold {
	return constraint.NewManifold(bodyA, bodyB, collide.Contact{
		Normal:      mgl64.Vec2{1, 0},
		Penetration: 0.1,
		Count:       1,
	})
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

func (ec *eventCapture) subscribeAll(events *Events) {
	events.Subscribe(COLLISION_ENTER, ec.capture)
	events.Subscribe(COLLISION_STAY, ec.capture)
	events.Subscribe(COLLISION_EXIT, ec.capture)
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(COLLISION_ENTER, capture.capture)

	if len(events.listeners[COLLISION_ENTER]) != 1 {
		t.Errorf("Expected 1 listener for COLLISION_ENTER, got %d", len(events.listeners[COLLISION_ENTER]))
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	capture1 := &eventCapture{}
	capture2 := &eventCapture{}

	events.Subscribe(COLLISION_ENTER, capture1.capture)
	events.Subscribe(COLLISION_ENTER, capture2.capture)

	h := createTestHandles(t, 2)
	events.recordCollisions([]*constraint.Manifold{createTestManifold(h[0], h[1])})
	events.flush()

	if capture1.count() != 1 {
		t.Errorf("Capture1 expected 1 event, got %d", capture1.count())
	}
	if capture2.count() != 1 {
		t.Errorf("Capture2 expected 1 event, got %d", capture2.count())
	}
}

func TestEvents_ZeroValue(t *testing.T) {
	var events Events
	capture := &eventCapture{}
	capture.subscribeAll(&events)

	h := createTestHandles(t, 2)
	events.recordCollisions([]*constraint.Manifold{createTestManifold(h[0], h[1])})
	events.flush()

	if !capture.hasEventType(COLLISION_ENTER) {
		t.Error("zero value Events did not dispatch COLLISION_ENTER")
	}
}

// =============================================================================
// makePairKey Tests
// =============================================================================

func TestMakePairKey_Normalization(t *testing.T) {
	h := createTestHandles(t, 2)

	if makePairKey(h[0], h[1]) != makePairKey(h[1], h[0]) {
		t.Error("makePairKey should be independent of the argument order")
	}
}

func TestMakePairKey_DifferentPairs(t *testing.T) {
	h := createTestHandles(t, 3)

	if makePairKey(h[0], h[1]) == makePairKey(h[0], h[2]) {
		t.Error("different pairs produced the same key")
	}
}

// =============================================================================
// Enter / Stay / Exit Tests
// =============================================================================

func TestEvents_CollisionEnterStayExit(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	capture.subscribeAll(&events)

	h := createTestHandles(t, 2)
	manifolds := []*constraint.Manifold{createTestManifold(h[1], h[0])}

	// Frame 1: Enter
	events.recordCollisions(manifolds)
	events.flush()
	if capture.count() != 1 || capture.events[0].Type() != COLLISION_ENTER {
		t.Fatalf("frame 1: expected a single COLLISION_ENTER, got %v", capture.events)
	}
	bodyA, bodyB := capture.events[0].Bodies()
	if bodyA != h[0] || bodyB != h[1] {
		t.Errorf("frame 1: bodies = %v, %v, want %v, %v", bodyA, bodyB, h[0], h[1])
	}

	// Frame 2: Stay
	capture.reset()
	events.recordCollisions(manifolds)
	events.flush()
	if capture.count() != 1 || capture.events[0].Type() != COLLISION_STAY {
		t.Fatalf("frame 2: expected a single COLLISION_STAY, got %v", capture.events)
	}

	// Frame 3: Exit
	capture.reset()
	events.recordCollisions(nil)
	events.flush()
	if capture.count() != 1 || capture.events[0].Type() != COLLISION_EXIT {
		t.Fatalf("frame 3: expected a single COLLISION_EXIT, got %v", capture.events)
	}

	// Frame 4: nothing
	capture.reset()
	events.flush()
	if capture.count() != 0 {
		t.Errorf("frame 4: expected no event, got %v", capture.events)
	}
}

func TestEvents_MultipleFrames_EnterExitEnter(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	capture.subscribeAll(&events)

	h := createTestHandles(t, 2)
	manifolds := []*constraint.Manifold{createTestManifold(h[0], h[1])}

	expected := []EventType{COLLISION_ENTER, COLLISION_EXIT, COLLISION_ENTER}
	frames := [][]*constraint.Manifold{manifolds, nil, manifolds}

	for i, frame := range frames {
		capture.reset()
		events.recordCollisions(frame)
		events.flush()

		if capture.count() != 1 || capture.events[0].Type() != expected[i] {
			t.Errorf("frame %d: expected %v, got %v", i, expected[i], capture.events)
		}
	}
}

func TestEvents_OrderedByPair(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	capture.subscribeAll(&events)

	h := createTestHandles(t, 4)
	events.recordCollisions([]*constraint.Manifold{
		createTestManifold(h[2], h[3]),
		createTestManifold(h[0], h[3]),
		createTestManifold(h[0], h[1]),
	})
	events.flush()

	want := [][2]actor.Handle{{h[0], h[1]}, {h[0], h[3]}, {h[2], h[3]}}
	if capture.count() != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), capture.count())
	}
	for i, e := range capture.events {
		a, b := e.Bodies()
		if a != want[i][0] || b != want[i][1] {
			t.Errorf("event %d: bodies = %v, %v, want %v", i, a, b, want[i])
		}
	}
}

func TestEvents_Flush_ClearsBuffer(t *testing.T) {
	events := NewEvents()
	h := createTestHandles(t, 2)

	events.recordCollisions([]*constraint.Manifold{createTestManifold(h[0], h[1])})
	events.flush()

	if len(events.buffer) != 0 {
		t.Errorf("buffer should be empty after flush, got %d events", len(events.buffer))
	}
}

func TestEvents_NoListeners(t *testing.T) {
	events := NewEvents()
	h := createTestHandles(t, 2)

	events.recordCollisions([]*constraint.Manifold{createTestManifold(h[0], h[1])})
	events.flush()
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{COLLISION_ENTER, "collision_enter"},
		{COLLISION_STAY, "collision_stay"},
		{COLLISION_EXIT, "collision_exit"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.eventType.String(); got != tt.expected {
			t.Errorf("EventType(%d).String() = %q, want %q", int(tt.eventType), got, tt.expected)
		}
	}
}

// =============================================================================
// World integration
// =============================================================================

func TestWorld_Events_Workflow(t *testing.T) {
	world := NewWorld()
	world.Gravity = mgl64.Vec2{}
	capture := &eventCapture{}
	capture.subscribeAll(&world.Events)

	a := world.AddBody(createCircle(t, mgl64.Vec2{0, 0}, 1))
	b := world.AddBody(createCircle(t, mgl64.Vec2{1.5, 0}, 1))

	world.Step(dt)
	if capture.count() != 1 || capture.events[0].Type() != COLLISION_ENTER {
		t.Fatalf("step 1: expected COLLISION_ENTER, got %v", capture.events)
	}

	// Positional correction never separates past the allowance, so the pair stays in contact
	capture.reset()
	world.Step(dt)
	if capture.count() != 1 || capture.events[0].Type() != COLLISION_STAY {
		t.Fatalf("step 2: expected COLLISION_STAY, got %v", capture.events)
	}

	capture.reset()
	body, _ := world.Body(b)
	body.Transform.Position = mgl64.Vec2{50, 0}
	world.Step(dt)
	if capture.count() != 1 || capture.events[0].Type() != COLLISION_EXIT {
		t.Fatalf("step 3: expected COLLISION_EXIT, got %v", capture.events)
	}
	if bodyA, bodyB := capture.events[0].Bodies(); bodyA != a || bodyB != b {
		t.Errorf("step 3: bodies = %v, %v, want %v, %v", bodyA, bodyB, a, b)
	}
}

func TestWorld_Events_RemovedBodyHasNoExit(t *testing.T) {
	world := NewWorld()
	world.Gravity = mgl64.Vec2{}
	capture := &eventCapture{}
	capture.subscribeAll(&world.Events)

	world.AddBody(createCircle(t, mgl64.Vec2{0, 0}, 1))
	b := world.AddBody(createCircle(t, mgl64.Vec2{1.5, 0}, 1))

	world.Step(dt)
	world.RemoveBody(b)

	capture.reset()
	world.Step(dt)
	if capture.hasEventType(COLLISION_EXIT) {
		t.Errorf("removed body emitted COLLISION_EXIT: %v", capture.events)
	}
}
