package kdtree

import (
	"maps"
	"slices"

	"honnef.co/go/outline/internal/logging"
)

// Entry is an indexed point together with its identifier.
type Entry[ID comparable] struct {
	ID    ID
	Point Point
}

type nodeRef int32

const noNode nodeRef = -1

// node is either a leaf, holding points, or a division with two children.
// Points whose coordinate on axis is <= split live in the left subtree.
type node[ID comparable] struct {
	leaf   bool
	axis   Axis
	split  int64
	bbox   box
	left   nodeRef
	right  nodeRef
	points []Entry[ID]
}

// Tree is an arena-backed 2D point index. The zero value is not usable; use
// [New] or [Build].
type Tree[ID comparable] struct {
	arena     []node[ID]
	root      nodeRef
	positions map[ID]Point
	capacity  int
}

// New returns an empty tree.
func New[ID comparable](opts ...Option) *Tree[ID] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree[ID]{
		root:      noNode,
		positions: make(map[ID]Point),
		capacity:  o.leafCapacity,
	}
}

// Build constructs a balanced tree from entries by recursive median splits.
// If an identifier occurs more than once, its last position wins.
func Build[ID comparable](entries []Entry[ID], opts ...Option) *Tree[ID] {
	t := New[ID](opts...)
	unique := make([]Entry[ID], 0, len(entries))
	slot := make(map[ID]int, len(entries))
	for _, e := range entries {
		if i, ok := slot[e.ID]; ok {
			unique[i].Point = e.Point
			continue
		}
		slot[e.ID] = len(unique)
		unique = append(unique, e)
	}
	for _, e := range unique {
		t.positions[e.ID] = e.Point
	}
	if len(unique) > 0 {
		t.root = t.create(unique, 0)
	}
	logging.Logger().Debug("kdtree: built", "points", len(unique), "nodes", len(t.arena))
	return t
}

// Len returns the number of indexed identifiers.
func (t *Tree[ID]) Len() int {
	return len(t.positions)
}

// Position returns the last known position of id.
func (t *Tree[ID]) Position(id ID) (Point, bool) {
	pt, ok := t.positions[id]
	return pt, ok
}

// All returns every indexed identifier, in no particular order.
func (t *Tree[ID]) All() []ID {
	return slices.Collect(maps.Keys(t.positions))
}

// Add indexes id at pt. Adding an identifier that is already present at the
// same position does nothing; adding it at a different position moves it.
func (t *Tree[ID]) Add(id ID, pt Point) {
	if old, ok := t.positions[id]; ok {
		if old == pt {
			return
		}
		t.Remove(id)
	}
	t.positions[id] = pt

	if t.root == noNode {
		t.root = t.newLeaf(AxisX, []Entry[ID]{{ID: id, Point: pt}})
		return
	}

	ref := t.root
	for {
		n := &t.arena[ref]
		n.bbox = n.bbox.extend(pt)
		if n.leaf {
			n.points = append(n.points, Entry[ID]{ID: id, Point: pt})
			if len(n.points) > t.capacity {
				t.split(ref)
			}
			return
		}
		ref = n.child(pt)
	}
}

// Remove drops id from the index and reports whether it was present.
func (t *Tree[ID]) Remove(id ID) bool {
	pt, ok := t.positions[id]
	if !ok {
		return false
	}
	delete(t.positions, id)

	if len(t.positions) == 0 {
		t.reset()
		return true
	}

	var path []nodeRef
	ref := t.root
	for {
		path = append(path, ref)
		n := &t.arena[ref]
		if n.leaf {
			break
		}
		ref = n.child(pt)
	}

	leaf := &t.arena[ref]
	before := len(leaf.points)
	leaf.points = slices.DeleteFunc(leaf.points, func(e Entry[ID]) bool { return e.ID == id })
	if len(leaf.points) == before {
		logging.Logger().Warn("kdtree: identifier missing from its leaf", "point", pt)
	}
	leaf.bbox = coverOf(leaf.points)

	// Each ancestor's box is recomputed from both children, which keeps every
	// box the exact cover of its subtree regardless of removal order.
	for i := len(path) - 2; i >= 0; i-- {
		n := &t.arena[path[i]]
		n.bbox = t.arena[n.left].bbox.union(t.arena[n.right].bbox)
	}
	return true
}

// Depth returns the number of levels in the tree.
func (t *Tree[ID]) Depth() int {
	if t.root == noNode {
		return 0
	}
	var walk func(ref nodeRef) int
	walk = func(ref nodeRef) int {
		n := &t.arena[ref]
		if n.leaf {
			return 1
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	return walk(t.root)
}

func (t *Tree[ID]) reset() {
	t.arena = t.arena[:0]
	t.root = noNode
}

func (n *node[ID]) child(pt Point) nodeRef {
	if pt.Coord(n.axis) <= n.split {
		return n.left
	}
	return n.right
}

func (t *Tree[ID]) newLeaf(axis Axis, points []Entry[ID]) nodeRef {
	t.arena = append(t.arena, node[ID]{
		leaf:   true,
		axis:   axis,
		bbox:   coverOf(points),
		left:   noNode,
		right:  noNode,
		points: points,
	})
	return nodeRef(len(t.arena) - 1)
}

func (t *Tree[ID]) create(points []Entry[ID], depth int) nodeRef {
	axis := axisForDepth(depth)
	if len(points) <= t.capacity {
		return t.newLeaf(axis, points)
	}
	used, split, left, right, ok := partitionEither(points, axis)
	if !ok {
		return t.newLeaf(axis, points)
	}
	l := t.create(left, depth+1)
	r := t.create(right, depth+1)
	t.arena = append(t.arena, node[ID]{
		axis:  used,
		split: split,
		bbox:  t.arena[l].bbox.union(t.arena[r].bbox),
		left:  l,
		right: r,
	})
	return nodeRef(len(t.arena) - 1)
}

// split turns an overflowing leaf into a division with two leaves, recursing
// into children that still overflow. A leaf whose points share both
// coordinates cannot be split and stays over capacity.
func (t *Tree[ID]) split(ref nodeRef) {
	n := &t.arena[ref]
	used, split, left, right, ok := partitionEither(n.points, n.axis)
	if !ok {
		return
	}
	logging.Logger().Debug("kdtree: split leaf", "points", len(n.points), "axis", used, "at", split)

	l := t.newLeaf(used.next(), left)
	r := t.newLeaf(used.next(), right)
	// newLeaf may have grown the arena.
	n = &t.arena[ref]
	n.leaf = false
	n.axis = used
	n.split = split
	n.left = l
	n.right = r
	n.points = nil

	if len(left) > t.capacity {
		t.split(l)
	}
	if len(right) > t.capacity {
		t.split(r)
	}
}

// partitionEither partitions points on axis, falling back to the other axis
// when all points share the first coordinate.
func partitionEither[ID comparable](points []Entry[ID], axis Axis) (Axis, int64, []Entry[ID], []Entry[ID], bool) {
	if split, left, right, ok := partition(points, axis); ok {
		return axis, split, left, right, true
	}
	other := axis.next()
	if split, left, right, ok := partition(points, other); ok {
		return other, split, left, right, true
	}
	return axis, 0, nil, nil, false
}

// partition splits points at the median of their coordinates on axis. Both
// halves are non-empty when ok is true.
func partition[ID comparable](points []Entry[ID], axis Axis) (split int64, left, right []Entry[ID], ok bool) {
	if len(points) < 2 {
		return 0, nil, nil, false
	}
	coords := make([]int64, len(points))
	for i, e := range points {
		coords[i] = e.Point.Coord(axis)
	}
	slices.Sort(coords)
	split = median(coords)
	if coords[len(coords)-1] <= split {
		// The median equals the maximum; fall back to the largest value below
		// it so that the right half isn't empty.
		i, _ := slices.BinarySearch(coords, split)
		if i == 0 {
			return 0, nil, nil, false
		}
		split = coords[i-1]
	}
	for _, e := range points {
		if e.Point.Coord(axis) <= split {
			left = append(left, e)
		} else {
			right = append(right, e)
		}
	}
	return split, left, right, true
}

// median returns the median of sorted values. For an even count it is the
// floor of the mean of the two middle values.
func median(sorted []int64) int64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return floorMidpoint(sorted[n/2-1], sorted[n/2])
}

func coverOf[ID comparable](points []Entry[ID]) box {
	b := emptyBox
	for _, e := range points {
		b = b.extend(e.Point)
	}
	return b
}
