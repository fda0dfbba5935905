package runtime

import (
	"fmt"
	"sort"

	"github.com/leonardohn/rinha-interpreter/pkg/ast"
)

// FrameID addresses one scope frame inside a Frames arena.
type FrameID int

// NoFrame is the parent of the root frame.
const NoFrame FrameID = -1

type frame struct {
	values map[string]ast.Term
	parent FrameID
	live   bool
}

// Frames is the scope chain of an evaluation, stored as an arena of frames
// linked by parent handle. The root frame always exists.
type Frames struct {
	frames []frame
	free   []FrameID
}

// NewFrames creates an arena holding only the root frame.
func NewFrames() *Frames {
	f := &Frames{}
	f.frames = append(f.frames, frame{values: make(map[string]ast.Term), parent: NoFrame, live: true})
	return f
}

// Root returns the handle of the global frame.
func (f *Frames) Root() FrameID {
	return 0
}

// Extend creates a new empty frame whose parent is parent.
func (f *Frames) Extend(parent FrameID) FrameID {
	f.mustLive(parent)
	if n := len(f.free); n > 0 {
		id := f.free[n-1]
		f.free = f.free[:n-1]
		fr := &f.frames[id]
		fr.parent = parent
		fr.live = true
		return id
	}
	f.frames = append(f.frames, frame{values: make(map[string]ast.Term), parent: parent, live: true})
	return FrameID(len(f.frames) - 1)
}

// Release returns a frame to the arena. The handle must not be used again.
func (f *Frames) Release(id FrameID) {
	if id == f.Root() {
		panic("runtime: cannot release the root frame")
	}
	f.mustLive(id)
	fr := &f.frames[id]
	clear(fr.values)
	fr.parent = NoFrame
	fr.live = false
	f.free = append(f.free, id)
}

// Parent exposes the parent frame (NoFrame for the root).
func (f *Frames) Parent(id FrameID) FrameID {
	f.mustLive(id)
	return f.frames[id].parent
}

// Get looks name up in id, then outward through the parents.
func (f *Frames) Get(id FrameID, name string) (ast.Term, bool) {
	for cur := id; cur != NoFrame; cur = f.frames[cur].parent {
		f.mustLive(cur)
		if term, ok := f.frames[cur].values[name]; ok {
			return term, true
		}
	}
	return nil, false
}

// Set binds name in id unless id already holds a binding for it; the first
// write to a name in a frame wins. Returns the term left in the frame.
func (f *Frames) Set(id FrameID, name string, term ast.Term) ast.Term {
	f.mustLive(id)
	values := f.frames[id].values
	if existing, ok := values[name]; ok {
		return existing
	}
	values[name] = term
	return term
}

// Keys returns the local bindings of id in sorted order.
func (f *Frames) Keys(id FrameID) []string {
	f.mustLive(id)
	values := f.frames[id].values
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the local bindings of id.
func (f *Frames) Snapshot(id FrameID) map[string]ast.Term {
	f.mustLive(id)
	values := f.frames[id].values
	out := make(map[string]ast.Term, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

// Len reports the number of live frames, root included.
func (f *Frames) Len() int {
	return len(f.frames) - len(f.free)
}

func (f *Frames) mustLive(id FrameID) {
	if id < 0 || int(id) >= len(f.frames) || !f.frames[id].live {
		panic(fmt.Sprintf("runtime: invalid frame %d", id))
	}
}
