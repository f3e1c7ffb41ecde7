package outline

import "fmt"

// GlyphPointIndex addresses one copy of a point in a glyph. A joint shared by
// two segments has one address per segment, both with the same ID.
//
// Addresses stay valid until a contour or segment is inserted, removed or
// reordered. Lookups through stale addresses fail with [ErrStaleAddress].
type GlyphPointIndex struct {
	Contour int
	Segment int
	ID      PointID
}

func (idx GlyphPointIndex) String() string {
	return fmt.Sprintf("%d/%d/%s", idx.Contour, idx.Segment, idx.ID)
}

// PointUpdate records the new position of a point moved by a transform. An
// undo collaborator replays it in reverse.
type PointUpdate struct {
	Index    GlyphPointIndex
	Position Point
}

// PointRef is a point together with its address.
type PointRef struct {
	Index    GlyphPointIndex
	Position Point
}
