// Package hook implements the model lifecycle hook registry for the Piranha
// data layer. Applications register callbacks per entity kind that run when a
// model is loaded, saved, or deleted; the repository layer invokes them at
// the matching points of its load/save/delete flows.
//
// Registration uses generic top-level functions (OnLoad, OnBeforeSave, ...)
// so callbacks are fully typed at the call site. Storage is keyed by the
// callback's runtime model type, which keeps the set of entity kinds open —
// applications can hook their own model types, not just the built-in ones.
//
// The registry is not synchronized. Register and Clear during
// single-goroutine startup; invocation is read-only and may then happen
// concurrently from request handlers.
package hook

import (
	"context"
	"reflect"
)

// Event identifies a model lifecycle event.
type Event string

// Lifecycle events, in the order they occur around a model's life.
const (
	// EventLoad fires after a model is fetched from the store and before it
	// is inserted into any cache. Callbacks may mutate the model in place;
	// the mutated model is what gets cached.
	EventLoad Event = "load"
	// EventBeforeSave fires before a model is written to the store.
	EventBeforeSave Event = "before_save"
	// EventAfterSave fires after a model has been written to the store.
	EventAfterSave Event = "after_save"
	// EventBeforeDelete fires before a model is removed from the store.
	EventBeforeDelete Event = "before_delete"
	// EventAfterDelete fires after a model has been removed from the store.
	EventAfterDelete Event = "after_delete"
)

var events = [...]Event{
	EventLoad,
	EventBeforeSave,
	EventAfterSave,
	EventBeforeDelete,
	EventAfterDelete,
}

// Func is the callback signature for lifecycle hooks on models of type T.
// Returning a non-nil error aborts the remaining callbacks registered for
// the same event and kind, and the error propagates to the invoking caller.
type Func[T any] func(ctx context.Context, m *T) error

// SlugFunc generates a URL-safe slug from arbitrary text. It is used to
// override the default slug generation (see the slug package).
type SlugFunc func(string) string

// callback is the type-erased form stored in the tables. The closure built
// by On re-asserts the model back to its concrete type.
type callback func(ctx context.Context, m any) error

// Registry holds lifecycle callbacks per event and entity kind, plus the
// single slug generation override slot.
//
// Callbacks for one event and kind run synchronously on the caller's
// goroutine, in registration order. There is no deduplication: registering
// the same function twice runs it twice.
type Registry struct {
	tables map[Event]map[reflect.Type][]callback
	slugFn SlugFunc
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	r := &Registry{tables: make(map[Event]map[reflect.Type][]callback, len(events))}
	for _, ev := range events {
		r.tables[ev] = make(map[reflect.Type][]callback)
	}
	return r
}

// SetSlugFunc sets the slug generation override. The last assignment wins;
// passing nil restores the default behavior.
func (r *Registry) SetSlugFunc(fn SlugFunc) { r.slugFn = fn }

// SlugFunc returns the slug generation override, or nil when unset.
func (r *Registry) SlugFunc() SlugFunc { return r.slugFn }

// kindOf returns the table key for model type T.
func kindOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// On appends fn to the callback list for models of type T on the given
// event. Callbacks run in registration order. It never fails.
func On[T any](r *Registry, ev Event, fn Func[T]) {
	table, ok := r.tables[ev]
	if !ok {
		table = make(map[reflect.Type][]callback)
		r.tables[ev] = table
	}
	k := kindOf[T]()
	table[k] = append(table[k], func(ctx context.Context, m any) error {
		return fn(ctx, m.(*T))
	})
}

// OnLoad registers fn to run after a model of type T is loaded.
func OnLoad[T any](r *Registry, fn Func[T]) { On(r, EventLoad, fn) }

// OnBeforeSave registers fn to run before a model of type T is saved.
func OnBeforeSave[T any](r *Registry, fn Func[T]) { On(r, EventBeforeSave, fn) }

// OnAfterSave registers fn to run after a model of type T is saved.
func OnAfterSave[T any](r *Registry, fn Func[T]) { On(r, EventAfterSave, fn) }

// OnBeforeDelete registers fn to run before a model of type T is deleted.
func OnBeforeDelete[T any](r *Registry, fn Func[T]) { On(r, EventBeforeDelete, fn) }

// OnAfterDelete registers fn to run after a model of type T is deleted.
func OnAfterDelete[T any](r *Registry, fn Func[T]) { On(r, EventAfterDelete, fn) }

// Clear removes every callback registered for models of type T, across all
// lifecycle events. It is idempotent and a no-op when nothing is registered.
// Hooks for other model types are unaffected.
func Clear[T any](r *Registry) {
	k := kindOf[T]()
	for _, table := range r.tables {
		delete(table, k)
	}
}

// Invoke runs every callback registered for the given event and model type,
// in registration order, on the caller's goroutine. The first callback error
// aborts the remaining callbacks for this call and is returned as-is; hook
// errors are deliberately not isolated from one another. With no callbacks
// registered, Invoke is a no-op returning nil.
func Invoke[T any](ctx context.Context, r *Registry, ev Event, m *T) error {
	for _, cb := range r.tables[ev][kindOf[T]()] {
		if err := cb(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Load invokes the EventLoad callbacks for m.
func Load[T any](ctx context.Context, r *Registry, m *T) error {
	return Invoke(ctx, r, EventLoad, m)
}

// BeforeSave invokes the EventBeforeSave callbacks for m.
func BeforeSave[T any](ctx context.Context, r *Registry, m *T) error {
	return Invoke(ctx, r, EventBeforeSave, m)
}

// AfterSave invokes the EventAfterSave callbacks for m.
func AfterSave[T any](ctx context.Context, r *Registry, m *T) error {
	return Invoke(ctx, r, EventAfterSave, m)
}

// BeforeDelete invokes the EventBeforeDelete callbacks for m.
func BeforeDelete[T any](ctx context.Context, r *Registry, m *T) error {
	return Invoke(ctx, r, EventBeforeDelete, m)
}

// AfterDelete invokes the EventAfterDelete callbacks for m.
func AfterDelete[T any](ctx context.Context, r *Registry, m *T) error {
	return Invoke(ctx, r, EventAfterDelete, m)
}
