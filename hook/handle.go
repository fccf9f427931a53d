package hook

import "context"

// Handle is a typed view over a Registry bound to one entity kind. It lets
// callers register and invoke hooks without spelling out the type parameter
// on every call — the application layer exposes a named Handle per built-in
// model (see the engine package).
//
// A Handle holds no state beyond the registry reference; it is safe to copy.
type Handle[T any] struct {
	reg *Registry
}

// For returns a Handle bound to model type T on the given registry.
func For[T any](r *Registry) Handle[T] {
	return Handle[T]{reg: r}
}

// Registry returns the underlying registry.
func (h Handle[T]) Registry() *Registry { return h.reg }

// OnLoad registers fn to run after a model is loaded.
func (h Handle[T]) OnLoad(fn Func[T]) { OnLoad(h.reg, fn) }

// OnBeforeSave registers fn to run before a model is saved.
func (h Handle[T]) OnBeforeSave(fn Func[T]) { OnBeforeSave(h.reg, fn) }

// OnAfterSave registers fn to run after a model is saved.
func (h Handle[T]) OnAfterSave(fn Func[T]) { OnAfterSave(h.reg, fn) }

// OnBeforeDelete registers fn to run before a model is deleted.
func (h Handle[T]) OnBeforeDelete(fn Func[T]) { OnBeforeDelete(h.reg, fn) }

// OnAfterDelete registers fn to run after a model is deleted.
func (h Handle[T]) OnAfterDelete(fn Func[T]) { OnAfterDelete(h.reg, fn) }

// Clear removes every callback registered for this kind, across all events.
func (h Handle[T]) Clear() { Clear[T](h.reg) }

// Load invokes the EventLoad callbacks for m.
func (h Handle[T]) Load(ctx context.Context, m *T) error {
	return Load(ctx, h.reg, m)
}

// BeforeSave invokes the EventBeforeSave callbacks for m.
func (h Handle[T]) BeforeSave(ctx context.Context, m *T) error {
	return BeforeSave(ctx, h.reg, m)
}

// AfterSave invokes the EventAfterSave callbacks for m.
func (h Handle[T]) AfterSave(ctx context.Context, m *T) error {
	return AfterSave(ctx, h.reg, m)
}

// BeforeDelete invokes the EventBeforeDelete callbacks for m.
func (h Handle[T]) BeforeDelete(ctx context.Context, m *T) error {
	return BeforeDelete(ctx, h.reg, m)
}

// AfterDelete invokes the EventAfterDelete callbacks for m.
func (h Handle[T]) AfterDelete(ctx context.Context, m *T) error {
	return AfterDelete(ctx, h.reg, m)
}
