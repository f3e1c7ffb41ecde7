package outline

import "errors"

var (
	// ErrUnsupportedDegree is returned when evaluating a segment of degree
	// higher than 3.
	ErrUnsupportedDegree = errors.New("outline: unsupported Bézier degree")
	// ErrEmptyCurve is returned when evaluating a segment without points.
	ErrEmptyCurve = errors.New("outline: empty Bézier segment")
	// ErrStaleAddress is returned for a GlyphPointIndex whose contour, segment
	// or point no longer exists.
	ErrStaleAddress = errors.New("outline: stale point address")
	// ErrNotOnCurve is returned by operations that need an on-curve point.
	ErrNotOnCurve = errors.New("outline: point is not on the curve")
	// ErrNoJoin is returned for an on-curve point that doesn't join two
	// segments, such as the ends of an open contour.
	ErrNoJoin = errors.New("outline: point is not a join")
	ErrMalformedContour = errors.New("outline: malformed contour")
	ErrUnknownGlyph     = errors.New("outline: unknown glyph")
	ErrComponentCycle   = errors.New("outline: component cycle")
)
