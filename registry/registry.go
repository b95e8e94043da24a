package registry

// Registry binds a chain's root thread identifier to the SideThread
// descriptor that governs it. Entries are loaded once at startup (spec
// §4.5: "Registration is static data") and never mutated afterwards.
type Registry struct {
	descriptors map[string]*SideThread
	byThreadID  map[string]string
}

// New builds a Registry over the full named-descriptor table.
func New() *Registry {
	return &Registry{
		descriptors: KnownDescriptors(),
		byThreadID:  make(map[string]string),
	}
}

// Bind associates a thread identifier (the opaque id of a side thread's
// initial post) with a descriptor name from the known-descriptor table.
// Binding an identifier to an unknown name is a caller error and is
// silently ignored, since Lookup already has to fall back gracefully
// for identifiers with no binding at all.
func (r *Registry) Bind(threadID, descriptorName string) {
	if _, ok := r.descriptors[descriptorName]; !ok {
		return
	}
	r.byThreadID[threadID] = descriptorName
}

// Lookup returns the descriptor bound to threadID, or Fallback() if none
// is registered.
func (r *Registry) Lookup(threadID string) *SideThread {
	name, ok := r.byThreadID[threadID]
	if !ok {
		return Fallback()
	}
	d, ok := r.descriptors[name]
	if !ok {
		return Fallback()
	}
	return d
}

// Descriptor looks a side thread up directly by its registered name
// (rather than by thread id), for callers that already know which
// descriptor they want.
func (r *Registry) Descriptor(name string) (*SideThread, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}
