// Package kdtree implements a dynamic two-dimensional point index keyed by
// stable identifiers.
//
// The index is a binary space partition over integer coordinates whose split
// axis alternates between x (even depth) and y (odd depth). Nodes live in a
// slice arena and refer to each other by index. Leaves hold at most a small
// number of points (see [WithLeafCapacity]) and are split at the median of
// their points when they overflow. A map from identifier to last known
// position sits alongside the tree, which makes [Tree.Add] idempotent and lets
// [Tree.Remove] find the owning leaf without a search.
//
// # Complexity
//
// Region queries run in O(log n + k) on a balanced tree. Insertions and
// removals only split leaves locally and never rebalance the tree, so some
// insertion orders produce deeper trees than a fresh [Build] of the same
// points would. At the point counts of a single glyph this doesn't matter; a
// caller that has made many structural changes can simply rebuild.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. It is a derived cache: nothing keeps
// it in sync with the data it indexes, callers must remove and re-add every
// point whose position changed.
package kdtree
