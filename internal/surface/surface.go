package surface

import "sync"

// Stable identifiers for the paintable surfaces the engines look up.
const (
	CountdownText = "countdownText"
	Danmaku       = "danmakuContainer"
	Toasts        = "toastContainer"
	Subtitle      = "subtitle"
	Sparkles      = "sparkles"
)

// Registry maps stable identifiers to surfaces. A surface may be detached at
// any time (e.g. on teardown); lookups then report it absent.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]any)}
}

// Attach registers s under id, replacing any previous surface.
func (r *Registry) Attach(id string, s any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[id] = s
}

// Detach removes the surface registered under id.
func (r *Registry) Detach(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surfaces, id)
}

// DetachAll removes every surface.
func (r *Registry) DetachAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces = make(map[string]any)
}

func (r *Registry) get(id string) (any, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[id]
	return s, ok
}

// Lookup returns the surface under id if it is present and of type T.
func Lookup[T any](r *Registry, id string) (T, bool) {
	var zero T
	s, ok := r.get(id)
	if !ok {
		return zero, false
	}
	typed, ok := s.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
