// Package engine wires all Piranha subsystems together. It builds one typed
// repository per entity kind over a store backend, brackets every operation
// with the lifecycle hooks, and keeps the model cache coherent.
//
// This package exists to break the import cycle: the root piranha package
// defines Entity (imported by alias, site, tag, etc.) and so cannot import
// those packages back. The engine package sits above all subsystem packages
// and below the application layer.
//
// # Quick Start
//
//	st := memory.New()
//	eng := engine.New(st, engine.WithCache(cachemem.New()))
//
//	eng.Hooks().Tag.OnBeforeSave(func(ctx context.Context, t *tag.Tag) error {
//		t.Title = strings.TrimSpace(t.Title)
//		return nil
//	})
//
//	err := eng.SaveTag(ctx, &tag.Tag{ID: id.NewTagID(), Title: "Go"})
package engine
