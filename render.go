package outline

import (
	"iter"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Path returns c as a path for the rendering stack.
func (c *Contour) Path() path.Path {
	return elementsPath(c.Elements())
}

// Path returns the glyph's own contours as a path for the rendering stack.
// Components are not included; render the contours returned by
// [Registry.Flatten] for that.
func (g *Glyph) Path() path.Path {
	return elementsPath(g.Elements())
}

// ContoursPath returns a path tracing all of contours.
func ContoursPath(contours []*Contour) path.Path {
	return elementsPath(func(yield func(PathElement) bool) {
		for _, c := range contours {
			for el := range c.Elements() {
				if !yield(el) {
					return
				}
			}
		}
	})
}

func elementsPath(els iter.Seq[PathElement]) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for el := range els {
			var (
				cmd path.Command
				pts []vec.Vec2
			)
			switch el.Kind {
			case MoveToKind:
				buf[0] = toVec(el.P0)
				cmd, pts = path.CmdMoveTo, buf[:1]
			case LineToKind:
				buf[0] = toVec(el.P0)
				cmd, pts = path.CmdLineTo, buf[:1]
			case QuadToKind:
				buf[0], buf[1] = toVec(el.P0), toVec(el.P1)
				cmd, pts = path.CmdQuadTo, buf[:2]
			case CubicToKind:
				buf[0], buf[1], buf[2] = toVec(el.P0), toVec(el.P1), toVec(el.P2)
				cmd, pts = path.CmdCubeTo, buf[:3]
			case ClosePathKind:
				cmd = path.CmdClose
			default:
				continue
			}
			if !yield(cmd, pts) {
				return
			}
		}
	}
}

func toVec(pt Point) vec.Vec2 {
	return vec.Vec2{X: pt.X, Y: pt.Y}
}
