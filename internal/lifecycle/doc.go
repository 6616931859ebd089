// Package lifecycle provides deterministic resource management for the
// plugin core.
//
// Every subscription, timer, and file handle in the plugin is represented as
// a Disposable: a handle whose release action runs at most once. Disposables
// are owned explicitly; nothing relies on garbage collection to release a
// resource.
//
// # Ownership
//
// A Disposable has exactly one owner, typically a Store scoping a group of
// resources to the lifetime of an owning object:
//
//	type repoView struct {
//	    store lifecycle.Store
//	}
//
//	func (v *repoView) attach(cfg *config.Store) {
//	    v.store.Add(cfg.OnDidChange()(v.onConfigChange))
//	}
//
//	func (v *repoView) Dispose() {
//	    v.store.Dispose()
//	}
//
// Because repoView exposes Dispose, the view itself can be registered into a
// parent Store, nesting lifetimes by composition.
//
// # Diagnostics
//
// Adding a resource to an already-disposed Store or Map is tolerated: the
// resource is released immediately and a warning is logged, surfacing
// use-after-dispose bugs without crashing production paths. Registering a
// container on itself is a structural bug and panics.
//
// The optional tracker (see Track) records live disposables by id for leak
// hunting in tests and debug builds.
package lifecycle
