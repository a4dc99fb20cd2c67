package runtime

import (
	"errors"
	"sort"
)

// ErrGlobalFrame is returned when a caller tries to exit the global frame.
var ErrGlobalFrame = errors.New("runtime: cannot exit the global frame")

// Frame is one layer of variable bindings.
type Frame map[string]Value

func (f Frame) clone() Frame {
	out := make(Frame, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (f Frame) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ScopeStack holds the interpreter's frames. Frame 0 is global and is never
// popped.
//
// Entering a scope pushes a full copy of the current top frame. Exiting pops
// the top frame and writes each of its bindings back into the new top frame,
// but only for names that frame already holds; names first bound inside the
// block are dropped.
type ScopeStack struct {
	frames []Frame
}

// NewScopeStack returns a stack holding only an empty global frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []Frame{make(Frame)}}
}

// Depth reports the number of frames, always at least 1.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

func (s *ScopeStack) top() Frame {
	return s.frames[len(s.frames)-1]
}

// Enter pushes a snapshot of the current top frame.
func (s *ScopeStack) Enter() {
	s.frames = append(s.frames, s.top().clone())
}

// Exit pops the top frame, merges it into its parent and returns the names
// whose values were written back, sorted.
func (s *ScopeStack) Exit() ([]string, error) {
	if len(s.frames) == 1 {
		return nil, ErrGlobalFrame
	}
	exited := s.top()
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]

	parent := s.top()
	merged := make([]string, 0, len(exited))
	for name, value := range exited {
		if _, ok := parent[name]; ok {
			parent[name] = value
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// Define binds name in the top frame only.
func (s *ScopeStack) Define(name string, value Value) {
	s.top()[name] = value
}

// Get searches frames from innermost to outermost.
func (s *ScopeStack) Get(name string) (Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Snapshot returns a copy of the top frame.
func (s *ScopeStack) Snapshot() Frame {
	return s.top().clone()
}

// Globals returns a copy of the global frame.
func (s *ScopeStack) Globals() Frame {
	return s.frames[0].clone()
}
