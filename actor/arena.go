package actor

import "fmt"

// Handle is a stable reference to a body stored in an Arena.
// A handle goes stale when its body is removed; the slot may then be reused
// under a new generation, which old handles never match.
type Handle struct {
	index      uint32
	generation uint32
}

// Index returns the slot index of the handle
func (h Handle) Index() int {
	return int(h.index)
}

func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.index, h.generation)
}

type slot struct {
	body       *RigidBody
	generation uint32
}

// Arena owns bodies and hands out handles. Iteration order is slot order.
type Arena struct {
	slots []slot
	free  []uint32
	count int
}

// Insert stores a body and returns its handle
func (a *Arena) Insert(body *RigidBody) Handle {
	a.count++

	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[index].body = body

		return Handle{index: index, generation: a.slots[index].generation}
	}

	a.slots = append(a.slots, slot{body: body})

	return Handle{index: uint32(len(a.slots) - 1)}
}

// Remove deletes the body behind h. It returns false if h is stale.
func (a *Arena) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}

	s := &a.slots[h.index]
	s.body = nil
	s.generation++
	a.free = append(a.free, h.index)
	a.count--

	return true
}

// Get returns the body behind h, or false if the handle is stale or out of range
func (a *Arena) Get(h Handle) (*RigidBody, bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}

	s := a.slots[h.index]
	if s.body == nil || s.generation != h.generation {
		return nil, false
	}

	return s.body, true
}

// MustGet is like Get but panics on a stale handle
func (a *Arena) MustGet(h Handle) *RigidBody {
	body, ok := a.Get(h)
	if !ok {
		panic(fmt.Sprintf("actor: stale handle %v", h))
	}
	return body
}

// Pair returns two distinct bodies for mutation. Asking for the same body twice
// is a programming error and panics.
func (a *Arena) Pair(ha, hb Handle) (*RigidBody, *RigidBody) {
	if ha == hb {
		panic(fmt.Sprintf("actor: body %v borrowed twice", ha))
	}

	return a.MustGet(ha), a.MustGet(hb)
}

// Len returns the number of live bodies
func (a *Arena) Len() int {
	return a.count
}

// Handles returns the live handles in slot order
func (a *Arena) Handles() []Handle {
	handles := make([]Handle, 0, a.count)
	for i, s := range a.slots {
		if s.body != nil {
			handles = append(handles, Handle{index: uint32(i), generation: s.generation})
		}
	}

	return handles
}

// Each calls fn for every live body in slot order
func (a *Arena) Each(fn func(h Handle, body *RigidBody)) {
	for i, s := range a.slots {
		if s.body != nil {
			fn(Handle{index: uint32(i), generation: s.generation}, s.body)
		}
	}
}
