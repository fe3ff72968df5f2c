// Package events implements the forest's sealed change-notification
// surface: a tagged Event variant covering TreeAdded, TreeRemoved,
// TreeSubdivided, TreesMerged, and EntityMigrated, plus a Bus with
// copy-on-write listener registration and synchronous, per-listener
// panic-isolated dispatch.
//
// Events are a single tagged struct with a Kind enum dispatched via an
// exhaustive switch, rather than an interface hierarchy — there is no
// inheritance tree to keep closed.
package events
