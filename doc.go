// Package outline is the geometry engine of a glyph outline editor. It models
// glyphs as contours of Bézier segments, classifies how segments join, moves
// points while keeping those joins intact, and indexes points for hit testing.
//
// # Segments and contours
//
// A [Bezier] is a segment of degree 0 to 3. Its first and last points lie on
// the curve; the points in between are off-curve handles. A [Contour] is a
// sequence of segments, each starting where the previous one ends. The joint
// between two segments is stored in both of them and carries the same
// [PointID] in each. Points are addressed by [GlyphPointIndex], which names the
// contour, the segment and the ID, and so tells the two copies of a joint
// apart.
//
// Addresses are positional. Inserting, removing or reordering contours or
// segments invalidates them; every lookup through an address that no longer
// resolves fails with [ErrStaleAddress] instead of panicking.
//
// # Continuity
//
// Every join is classified by a [Continuity]: Positional joins only share a
// point, Velocity joins have handles mirrored through the joint and Tangent
// joins have collinear handles of different lengths. Classifications are
// derived from the geometry by [Contour.RecalcContinuities], or pinned by the
// user with [Contour.ChangeContinuity]. Recalculation doesn't touch pinned
// classifications.
//
// [Contour.TransformPoints] moves points and drags their neighbors along:
// moving a joint moves both of its copies and the adjacent handles, and moving
// a handle next to a Velocity or Tangent join moves the opposite handle to
// keep the join's classification. It reports every point it moved, which is
// what an undo stack needs to record.
//
// # Hit testing
//
// The [kdtree] sub-package provides the spatial index. A [Session] ties a
// glyph, its index and a selection together and keeps the index up to date
// for edits made through it. The index is a derived cache: code that edits a
// glyph behind a session's back has to call [Session.Rebuild].
//
// # Interchange
//
// Contours convert to and from the flat on/off-curve point lists of font
// files ([ContourFromFlat], [Contour.Flat]), the outlines of
// golang.org/x/image/font/sfnt ([ContoursFromSegments]) and drawing commands
// ([Pen], [Contour.Elements]). [Contour.Path] feeds the seehuhn.de/go/geom
// rendering stack.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. An editor owns its
// glyphs and sessions from a single goroutine.
package outline
