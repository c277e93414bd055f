/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package registry implements apis.Registry, the runtime store of type
// descriptors.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/metrics"
	"dirpx.dev/rtti/resolver"
	uref "dirpx.dev/rtti/utils/reflect"
)

var (
	// ErrNilDescriptor is returned when a nil descriptor is registered.
	ErrNilDescriptor = errors.New("rtti(registry): nil descriptor provided")
	// ErrEmptyName is returned when a descriptor has an empty name.
	ErrEmptyName = errors.New("rtti(registry): empty name provided")
	// ErrFrozen is returned by Register after Freeze.
	ErrFrozen = errors.New("rtti(registry): registry is frozen")
	// ErrTypeNotFound is returned when no descriptor matches a name or value.
	ErrTypeNotFound = errors.New("rtti(registry): type not found")
)

// Option configures a registry built by New.
type Option func(*registry)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics sets the metrics sink. The default discards everything.
func WithMetrics(m metrics.RegistryMetrics) Option {
	return func(r *registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithResolver replaces the chain Describe uses to name values.
// The default is resolver.Default over the registry itself.
func WithResolver(res apis.Resolver) Option {
	return func(r *registry) {
		if res != nil {
			r.res = res
		}
	}
}

// New constructs a Registry that normalizes owner types according to cfg.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	r := &registry{
		cfg:     cfg,
		log:     slog.Default(),
		metrics: metrics.NopRegistryMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.res == nil {
		r.res = resolver.Default(ownerIndex{r})
	}
	r.log = r.log.With(slog.String("component", "rtti.registry"))
	r.snap.Store(emptySnapshot)
	return r
}

// registry publishes an immutable snapshot through an atomic pointer.
// Readers never lock; writers serialize on mu, copy the current snapshot,
// and publish the copy.
type registry struct {
	cfg     apis.Config
	log     *slog.Logger
	metrics metrics.RegistryMetrics
	res     apis.Resolver

	// mu serializes writers so that no registration is lost between
	// loading and publishing a snapshot.
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// snapshot is never mutated once published.
type snapshot struct {
	byName map[string]*apis.TypeDescriptor
	// byType maps the normalized owner type to the first descriptor
	// registered for it.
	byType map[reflect.Type]*apis.TypeDescriptor
	// sorted holds every descriptor ordered by name.
	sorted []*apis.TypeDescriptor
	frozen bool
}

var emptySnapshot = &snapshot{
	byName: map[string]*apis.TypeDescriptor{},
	byType: map[reflect.Type]*apis.TypeDescriptor{},
}

// Register adds desc under its name. The first registration of a name wins.
func (r *registry) Register(desc *apis.TypeDescriptor) error {
	if desc == nil {
		return ErrNilDescriptor
	}
	name := desc.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	if cur.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, name)
	}
	if _, ok := cur.byName[name]; ok {
		r.log.Info("duplicate type registration ignored", slog.String("type", name))
		r.metrics.DuplicateSkipped(name)
		return nil
	}

	next := &snapshot{
		byName: maps.Clone(cur.byName),
		byType: maps.Clone(cur.byType),
	}
	next.byName[name] = desc
	if owner, err := uref.Normalize(desc.Owner(), r.cfg); err == nil {
		if _, taken := next.byType[owner]; !taken {
			next.byType[owner] = desc
		}
	}
	i, _ := slices.BinarySearchFunc(cur.sorted, name, func(d *apis.TypeDescriptor, n string) int {
		return strings.Compare(d.Name(), n)
	})
	next.sorted = slices.Insert(slices.Clone(cur.sorted), i, desc)
	r.snap.Store(next)

	r.log.Debug("type registered",
		slog.String("type", name),
		slog.Int("fields", len(desc.Fields())),
		slog.Int("arrays", len(desc.Arrays())),
		slog.Int("methods", len(desc.Methods())),
	)
	r.metrics.TypeRegistered(name)
	r.metrics.Types(len(next.sorted))
	return nil
}

// HasType reports whether name is registered.
func (r *registry) HasType(name string) bool {
	_, ok := r.snap.Load().byName[name]
	return ok
}

// GetType returns the descriptor registered under name.
func (r *registry) GetType(name string) (*apis.TypeDescriptor, error) {
	desc, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	return desc, nil
}

// Lookup returns the descriptor registered under name if present.
func (r *registry) Lookup(name string) (*apis.TypeDescriptor, bool) {
	desc, ok := r.snap.Load().byName[name]
	r.metrics.Lookup(ok)
	return desc, ok
}

// LookupType returns the descriptor owning the nearest named type of t.
func (r *registry) LookupType(t reflect.Type) (*apis.TypeDescriptor, bool) {
	desc, ok := r.lookupType(r.snap.Load(), t)
	r.metrics.Lookup(ok)
	return desc, ok
}

func (r *registry) lookupType(s *snapshot, t reflect.Type) (*apis.TypeDescriptor, bool) {
	if t == nil {
		return nil, false
	}
	owner, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	desc, ok := s.byType[owner]
	return desc, ok
}

// ownerIndex is the uncounted view of the owner-type index handed to the
// default resolver, so that Describe records a single lookup.
type ownerIndex struct{ r *registry }

func (o ownerIndex) LookupType(t reflect.Type) (*apis.TypeDescriptor, bool) {
	return o.r.lookupType(o.r.snap.Load(), t)
}

// Describe resolves the registered name of v and returns its descriptor.
// Unless v names itself through apis.Namer, the descriptor found under the
// resolved name must be owned by the type of v: two Go types sharing an
// identifier do not share a descriptor.
func (r *registry) Describe(v any) (*apis.TypeDescriptor, error) {
	if v == nil {
		r.metrics.Lookup(false)
		return nil, fmt.Errorf("%w: nil value", ErrTypeNotFound)
	}
	name := r.res.Resolve(v, r.cfg)
	if name == "" {
		r.metrics.Lookup(false)
		return nil, fmt.Errorf("%w: no name for %T", ErrTypeNotFound, v)
	}
	desc, ok := r.snap.Load().byName[name]
	if ok && !namedBy(v, name) && !r.owns(desc, reflect.TypeOf(v)) {
		ok = false
	}
	r.metrics.Lookup(ok)
	if !ok {
		return nil, fmt.Errorf("%w: %q for %T", ErrTypeNotFound, name, v)
	}
	return desc, nil
}

// owns reports whether t normalizes to the owner of desc. A descriptor
// without an owner matches any type.
func (r *registry) owns(desc *apis.TypeDescriptor, t reflect.Type) bool {
	if desc.Owner() == nil {
		return true
	}
	want, err := uref.Normalize(desc.Owner(), r.cfg)
	if err != nil {
		return false
	}
	got, err := uref.Normalize(t, r.cfg)
	return err == nil && got == want
}

func namedBy(v any, name string) bool {
	n, ok := v.(apis.Namer)
	return ok && n.EntityName() == name
}

// Types returns every descriptor sorted by name.
func (r *registry) Types() []*apis.TypeDescriptor {
	return slices.Clone(r.snap.Load().sorted)
}

// Count returns the number of registered descriptors.
func (r *registry) Count() int {
	return len(r.snap.Load().sorted)
}

// Freeze makes the registry read-only. Freezing twice is a no-op.
func (r *registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	if cur.frozen {
		return
	}
	next := *cur
	next.frozen = true
	r.snap.Store(&next)
	r.log.Debug("registry frozen", slog.Int("types", len(cur.sorted)))
}

// State returns the current lifecycle state.
func (r *registry) State() apis.State {
	s := r.snap.Load()
	switch {
	case s.frozen:
		return apis.StateFrozen
	case len(s.sorted) > 0:
		return apis.StatePopulated
	default:
		return apis.StateEmpty
	}
}

// Clear drops every descriptor and unfreezes the registry.
func (r *registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Store(emptySnapshot)
	r.metrics.Types(0)
	r.log.Debug("registry cleared")
}
