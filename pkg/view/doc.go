// Package view provides the declarative view contract and its reconciliation
// primitives.
//
// A [View] is an immutable, cheaply-copied description of a subtree of scene
// nodes. Views carry no build-time state of their own; whatever a view needs
// to remember between builds lives in an externalized state slot owned by
// the enclosing subtree holder. Building a view converges the scene store to
// the described shape, reusing nodes from the previous build wherever the
// positional slot and attribute kind still match, and destroying and
// recreating them when they do not.
//
// # Built-in views
//
// [Nothing] renders nothing. [Text] renders a single text node, mutating the
// text in place across builds. [Group] renders an ordered fragment of child
// views with positional reuse.
//
// # Presenters
//
// A [Presenter] is a function from typed props to a View. [Bind] turns a
// presenter plus props into a view that owns its own scene node, its own
// dependency tracker, and a persistent type-erased [Handle] holding the
// presenter's build state across cycles.
//
// # Combinators
//
// [Styled], [Insert], [InsertBundle], [With], and [Once] wrap an inner view
// and perform an extra side effect over the nodes it produced.
//
// # Output shape
//
// Every build returns a [Span]: nothing, a single node, or an ordered
// fragment of spans. The span a build returns is cached by the subtree
// holder and handed back as prev on the next build.
package view
