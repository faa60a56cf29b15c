package builder

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/roach88/curveforge/internal/curve"
	"github.com/roach88/curveforge/internal/instructions"
	"github.com/roach88/curveforge/internal/instrument"
)

// Registry maps curve types to builders.
//
// Registry is safe for concurrent use. Writes are serialized against reads,
// so a reader never observes a partially registered entry. Once sealed, a
// registry rejects further writes.
type Registry struct {
	mu       sync.RWMutex
	builders map[curve.Type]Builder
	sealed   bool
}

// NewRegistry returns a registry holding builders. It fails on the first
// builder that Register would reject.
func NewRegistry(builders ...Builder) (*Registry, error) {
	r := &Registry{builders: make(map[curve.Type]Builder, len(builders))}
	for _, b := range builders {
		if err := r.Register(b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds b under its curve type.
//
// It fails with *DuplicateRegistrationError if the tag is taken, and with
// ErrRegistrySealed after Seal. A failed call leaves the registry unchanged.
func (r *Registry) Register(b Builder) error {
	if b == nil {
		return errors.New("builder: cannot register a nil builder")
	}
	tag := b.CurveType()
	if !tag.Valid() {
		return fmt.Errorf("builder: cannot register builder for unknown curve type %q", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}
	if _, exists := r.builders[tag]; exists {
		return &DuplicateRegistrationError{Tag: tag}
	}
	r.builders[tag] = b
	return nil
}

// MustRegister is like Register but panics on error. Use it for startup
// wiring, where a bad registration is a programming error.
func (r *Registry) MustRegister(b Builder) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Resolve returns the builder registered for tag, or *UnknownCurveTypeError.
func (r *Registry) Resolve(tag curve.Type) (Builder, error) {
	r.mu.RLock()
	b, ok := r.builders[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownCurveTypeError{Tag: tag}
	}
	return b, nil
}

// Build resolves tag and delegates to its builder.
func (r *Registry) Build(tag curve.Type, instruments []instrument.Instrument, instr instructions.Instructions) (curve.Curve, error) {
	b, err := r.Resolve(tag)
	if err != nil {
		return nil, err
	}
	return b.Build(instruments, instr)
}

// Types returns the registered curve types in sorted order.
func (r *Registry) Types() []curve.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.builders))
}

// Len returns the number of registered builders.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builders)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(defaultBuilders()...)
	if err != nil {
		panic(fmt.Sprintf("builder: invalid default builder table: %v", err))
	}
	r.Seal()
	return r
})

// Default returns the process-wide registry, built from defaultBuilders on
// first use and sealed.
func Default() *Registry {
	return defaultRegistry()
}

// ResolveBuilder resolves tag against the process-wide registry.
func ResolveBuilder(tag curve.Type) (Builder, error) {
	return Default().Resolve(tag)
}
