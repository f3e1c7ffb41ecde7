package outline

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
)

// segmentPoint identifies one copy of a point within a contour.
type segmentPoint struct {
	segment int
	id      PointID
}

// slot is the position of a point within a contour. The start and end of a
// closed contour with a single segment share an ID but not a slot.
type slot struct {
	segment, index int
}

// TransformPoints applies aff to the points of idxs that belong to the contour
// with index contourIndex, and drags other points along so the contour keeps
// its shape constraints:
//
//   - Moving an on-curve point moves both copies of the joint and the handles
//     adjacent to it.
//   - Moving a handle next to a Velocity join mirrors the opposite handle
//     through the join. Next to a Tangent join, the opposite handle is moved
//     onto the same line, keeping the ratio of the handle lengths.
//
// The classifications are those in effect before the call; they aren't
// recalculated. Constraints are enforced one join deep. Handles that are
// themselves part of idxs are only moved by aff. Each point moves at most
// once.
//
// TransformPoints returns the new position of every point it moved.
// Addresses in idxs that don't resolve are ignored.
func (c *Contour) TransformPoints(contourIndex int, idxs []GlyphPointIndex, aff Affine) []PointUpdate {
	n := len(c.curves)
	if n == 0 {
		return nil
	}
	requested := mapset.NewThreadUnsafeSet[segmentPoint]()
	for _, idx := range idxs {
		if idx.Contour == contourIndex {
			requested.Add(segmentPoint{idx.Segment, idx.ID})
		}
	}
	if requested.Cardinality() == 0 {
		return nil
	}

	in := make([]Continuity, n)
	out := make([]Continuity, n)
	for i, b := range c.curves {
		in[i], out[i] = b.continuityIn, b.continuityOut
	}

	seen := mapset.NewThreadUnsafeSet[slot]()
	var updates []PointUpdate
	move := func(s, i int, to Point) {
		b := c.curves[s]
		if !seen.Add(slot{s, i}) {
			return
		}
		b.SetPosition(i, to)
		updates = append(updates, PointUpdate{
			Index:    GlyphPointIndex{Contour: contourIndex, Segment: s, ID: b.points[i].ID},
			Position: to,
		})
	}
	apply := func(s, i int) {
		move(s, i, c.curves[s].points[i].Position.Transform(aff))
	}
	// pair moves handle i of segment s to balance a handle that moved on the
	// other side of joint.
	pair := func(s, i int, joint, moved Point, k Continuity, movedOutgoing bool) {
		cp := c.curves[s].points[i]
		if requested.Contains(segmentPoint{s, cp.ID}) {
			return
		}
		switch k.Kind {
		case Velocity:
			move(s, i, moved.Mirror(joint))
		case Tangent:
			if !(k.Beta > 0) || math.IsInf(k.Beta, 0) {
				return
			}
			dir := joint.Sub(moved).Unit()
			if dir.IsZero() {
				return
			}
			l := moved.Sub(joint).Hypot()
			if movedOutgoing {
				l /= k.Beta
			} else {
				l *= k.Beta
			}
			move(s, i, joint.Translate(dir.Mul(l)))
		}
	}

	// On-curve points and the handles they drag along move first, so that
	// pairing below reflects through the joints' final positions.
	var handles []slot
	for s := range n {
		cur := c.curves[s]
		prev, next := c.prevIndex(s), c.nextIndex(s)
		last := len(cur.points) - 1
		for i := 0; i <= last; i++ {
			if !requested.Contains(segmentPoint{s, cur.points[i].ID}) {
				continue
			}
			if i != 0 && i != last {
				handles = append(handles, slot{s, i})
				continue
			}
			apply(s, i)
			if i == 0 {
				if last >= 2 {
					apply(s, 1)
				}
				if prev >= 0 {
					p := c.curves[prev]
					pl := len(p.points) - 1
					apply(prev, pl)
					if pl >= 2 {
						apply(prev, pl-1)
					}
				}
			}
			if i == last {
				if last >= 2 {
					apply(s, last-1)
				}
				if next >= 0 {
					q := c.curves[next]
					apply(next, 0)
					if len(q.points) >= 3 {
						apply(next, 1)
					}
				}
			}
		}
	}

	for _, h := range handles {
		s, i := h.segment, h.index
		apply(s, i)
		cur := c.curves[s]
		prev, next := c.prevIndex(s), c.nextIndex(s)
		last := len(cur.points) - 1
		if i == 1 && prev >= 0 {
			p := c.curves[prev]
			if pl := len(p.points) - 1; pl >= 2 {
				pair(prev, pl-1, cur.points[0].Position, cur.points[1].Position, in[s], true)
			}
		}
		if i == last-1 && next >= 0 {
			if q := c.curves[next]; len(q.points) >= 3 {
				pair(next, 1, cur.points[last].Position, cur.points[i].Position, out[s], false)
			}
		}
	}

	if len(updates) > 0 {
		c.dominantOK = false
	}
	return updates
}
