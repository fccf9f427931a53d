// Package piranha provides the data layer for a content management system:
// typed entity models, a pluggable persistence store, a cache layer, and a
// lifecycle hook registry that lets applications run custom logic when
// models are loaded, saved, or deleted.
//
// Piranha is designed as a library, not a service. Import it, configure a
// store, and register hooks as ordinary Go functions.
//
// # Quick Start
//
//	app, err := piranha.New(
//	    piranha.WithStore(pgStore),
//	    piranha.WithLogger(logger),
//	)
//
// # Architecture
//
// Piranha follows a composable store pattern where each entity subsystem
// (alias, category, media, param, site, tag) defines its own store
// interface. A single backend implements all of them.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based,
// compile-time safe identifiers.
package piranha
