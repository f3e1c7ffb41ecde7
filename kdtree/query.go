package kdtree

// QueryRegion returns every entry inside the rectangle spanned by the corners
// a and b, boundaries included. The corners may be given in any order.
func (t *Tree[ID]) QueryRegion(a, b Point) []Entry[ID] {
	if t.root == noNode {
		return nil
	}
	region := newBox(a, b)

	var out []Entry[ID]
	stack := []nodeRef{t.root}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.arena[ref]
		if !n.bbox.intersects(region) {
			continue
		}
		if region.containsBox(n.bbox) {
			out = t.collect(ref, out)
			continue
		}
		if n.leaf {
			for _, e := range n.points {
				if region.contains(e.Point) {
					out = append(out, e)
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return out
}

// collect appends every entry of the subtree rooted at ref without checking
// positions.
func (t *Tree[ID]) collect(ref nodeRef, out []Entry[ID]) []Entry[ID] {
	stack := []nodeRef{ref}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.arena[ref]
		if n.leaf {
			out = append(out, n.points...)
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return out
}

// QueryPoint returns the entries in the square centered on center whose sides
// lie radius/2 (integer division) away from it, so the square's total side is
// about radius. It returns nothing for a negative radius or if the square's
// corners overflow int64.
func (t *Tree[ID]) QueryPoint(center Point, radius int64) []Entry[ID] {
	if radius < 0 {
		return nil
	}
	half := radius / 2
	x0, ok0 := subChecked(center.X, half)
	y0, ok1 := subChecked(center.Y, half)
	x1, ok2 := addChecked(center.X, half)
	y1, ok3 := addChecked(center.Y, half)
	if !(ok0 && ok1 && ok2 && ok3) {
		return nil
	}
	return t.QueryRegion(Pt(x0, y0), Pt(x1, y1))
}

// QueryOnAxis returns every entry whose coordinate on axis lies within radius
// of center. It scans all entries instead of walking the tree; it serves
// one-dimensional guide and grid snapping, where the other coordinate is
// unconstrained.
func (t *Tree[ID]) QueryOnAxis(axis Axis, center, radius int64) []Entry[ID] {
	if radius < 0 {
		return nil
	}
	var out []Entry[ID]
	for id, pt := range t.positions {
		d, ok := subChecked(pt.Coord(axis), center)
		if !ok {
			continue
		}
		if d < 0 {
			d = -d
		}
		// -MinInt64 is still negative.
		if d < 0 || d > radius {
			continue
		}
		out = append(out, Entry[ID]{ID: id, Point: pt})
	}
	return out
}
