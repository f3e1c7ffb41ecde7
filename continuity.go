package outline

import (
	"fmt"
	"math"
)

const (
	// VelocityTolerance is the largest distance between the outgoing handle
	// and the mirror of the incoming handle for a join to count as Velocity.
	VelocityTolerance = 0.01
	// CollinearTolerance is the largest sine of the angle between the two
	// handles of a join for them to count as collinear.
	CollinearTolerance = 1e-6
	// DominantTieThreshold is the length difference below which two segments
	// compete for being a contour's dominant segment.
	DominantTieThreshold = 0.05
)

// ContinuityKind describes how the two handles meeting at an on-curve point
// relate to each other.
type ContinuityKind uint8

const (
	// Unclassified is the zero value, used for joins that haven't been
	// classified and for the open ends of a contour.
	Unclassified ContinuityKind = iota
	// Positional joins only share a position.
	Positional
	// Velocity joins have handles mirrored through the join.
	Velocity
	// Tangent joins have collinear handles of different lengths.
	Tangent
)

func (k ContinuityKind) String() string {
	switch k {
	case Unclassified:
		return "Unclassified"
	case Positional:
		return "Positional"
	case Velocity:
		return "Velocity"
	case Tangent:
		return "Tangent"
	default:
		return fmt.Sprintf("ContinuityKind(%d)", k)
	}
}

// Continuity is the classification of a join.
//
// Classifications are derived from the geometry by
// [Contour.RecalcContinuities], unless Pinned is set, in which case
// recalculation leaves them alone. [Contour.ChangeContinuity] pins.
type Continuity struct {
	Kind ContinuityKind
	// Beta is the ratio of the outgoing handle's length to the incoming
	// handle's length. It is only meaningful for Tangent.
	Beta   float64
	Pinned bool
}

// TangentContinuity returns an unpinned Tangent classification.
func TangentContinuity(beta float64) Continuity {
	return Continuity{Kind: Tangent, Beta: beta}
}

func (c Continuity) String() string {
	s := c.Kind.String()
	if c.Kind == Tangent {
		s = fmt.Sprintf("Tangent(%g)", c.Beta)
	}
	if c.Pinned {
		s += " (pinned)"
	}
	return s
}

// Pin returns c marked as a user override.
func (c Continuity) Pin() Continuity {
	c.Pinned = true
	return c
}

// reversed returns the classification of the same join walked in the
// opposite direction.
func (c Continuity) reversed() Continuity {
	if c.Kind == Tangent && c.Beta != 0 {
		c.Beta = 1 / c.Beta
	}
	return c
}

// classify derives the classification of the join at joint, between the
// incoming handle in and the outgoing handle out. smooth is the authoring
// intent of the incoming segment.
func classify(in, joint, out Point, smooth bool) Continuity {
	if !smooth {
		return Continuity{Kind: Positional}
	}
	near := joint.Sub(in)
	far := out.Sub(joint)
	if near.IsZero() || far.IsZero() {
		return Continuity{Kind: Positional}
	}
	if in.Mirror(joint).Distance(out) <= VelocityTolerance {
		return Continuity{Kind: Velocity}
	}
	if Collinear(in, joint, out, CollinearTolerance) && near.Dot(far) > 0 {
		beta := far.Hypot() / near.Hypot()
		if !math.IsNaN(beta) && !math.IsInf(beta, 0) {
			return TangentContinuity(beta)
		}
	}
	return Continuity{Kind: Positional}
}
