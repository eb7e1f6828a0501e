// Package scene provides the externally-owned graph store the reconciliation
// engine operates on.
//
// The store is a flat registry of addressable nodes. Each node has a parent,
// an ordered child list, and a set of typed attributes keyed by their Go
// type. Attribute access is exposed through generic package-level functions
// ([Insert], [Get], [Remove], [NodesWith]) because Go methods cannot carry
// type parameters.
//
// The store also carries a registry of shared values ([SetValue], [Value]).
// Every write bumps a per-type version counter, which is what the view
// layer's dependency probes compare against to decide whether a subtree
// needs rebuilding.
//
// World is a complete in-memory reference implementation. The engine never
// owns a World; it borrows one for the duration of a reconciliation cycle.
package scene
