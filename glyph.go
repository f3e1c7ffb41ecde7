package outline

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/unicode/runenames"
)

// Component places another glyph, referenced by name, inside a glyph.
type Component struct {
	BaseName  string
	Transform Affine
}

// Glyph is a named outline made of contours and components.
type Glyph struct {
	Name    string
	Unicode []rune
	// Width is the advance width.
	Width      float64
	Contours   []*Contour
	Components []Component
}

// DisplayName returns a name suitable for showing to users: the code points
// and Unicode names of the glyph's characters, or its name if it has none.
func (g *Glyph) DisplayName() string {
	if len(g.Unicode) == 0 {
		return g.Name
	}
	parts := make([]string, len(g.Unicode))
	for i, r := range g.Unicode {
		if name := runenames.Name(r); name != "" {
			parts[i] = fmt.Sprintf("U+%04X %s", r, name)
		} else {
			parts[i] = fmt.Sprintf("U+%04X", r)
		}
	}
	return strings.Join(parts, ", ")
}

// Contour returns the contour at index i.
func (g *Glyph) Contour(i int) (*Contour, error) {
	if i < 0 || i >= len(g.Contours) {
		return nil, fmt.Errorf("%w: contour %d", ErrStaleAddress, i)
	}
	return g.Contours[i], nil
}

// Point returns the point at addr.
func (g *Glyph) Point(addr GlyphPointIndex) (CurvePoint, error) {
	c, err := g.Contour(addr.Contour)
	if err != nil {
		return CurvePoint{}, err
	}
	return c.Point(addr)
}

// Points iterates over every copy of every point, in contour and segment
// order. Joints are visited once per segment.
func (g *Glyph) Points() iter.Seq2[GlyphPointIndex, CurvePoint] {
	return func(yield func(GlyphPointIndex, CurvePoint) bool) {
		for ci, c := range g.Contours {
			for si, b := range c.curves {
				for _, cp := range b.points {
					if !yield(GlyphPointIndex{Contour: ci, Segment: si, ID: cp.ID}, cp) {
						return
					}
				}
			}
		}
	}
}

// Lookup returns the addresses of every copy of the point with the given ID.
func (g *Glyph) Lookup(id PointID) []GlyphPointIndex {
	var out []GlyphPointIndex
	for addr := range g.Points() {
		if addr.ID == id && !slices.Contains(out, addr) {
			out = append(out, addr)
		}
	}
	return out
}

// OnCurveQuery returns the first segment passing within tol of pt.
func (g *Glyph) OnCurveQuery(pt Point, tol float64) (contour, segment int, ok bool) {
	probe := Rect{X0: pt.X, Y0: pt.Y, X1: pt.X, Y1: pt.Y}.Inflate(tol, tol)
	for ci, c := range g.Contours {
		if !c.ControlBox().Intersects(probe) {
			continue
		}
		for si, b := range c.curves {
			if b.OnCurveQuery(pt, tol) {
				return ci, si, true
			}
		}
	}
	return 0, 0, false
}

// TransformPoints applies [Contour.TransformPoints] to every contour named in
// idxs.
func (g *Glyph) TransformPoints(idxs []GlyphPointIndex, aff Affine) []PointUpdate {
	var contours []int
	for _, idx := range idxs {
		if !slices.Contains(contours, idx.Contour) {
			contours = append(contours, idx.Contour)
		}
	}
	slices.Sort(contours)

	var out []PointUpdate
	for _, ci := range contours {
		c, err := g.Contour(ci)
		if err != nil {
			continue
		}
		out = append(out, c.TransformPoints(ci, idxs, aff)...)
	}
	return out
}

// ControlBox returns the bounding box of the glyph's own contours.
func (g *Glyph) ControlBox() Rect {
	r := emptyRect
	for _, c := range g.Contours {
		r = r.Union(c.ControlBox())
	}
	return r
}

// Elements returns the drawing commands of the glyph's own contours.
func (g *Glyph) Elements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for _, c := range g.Contours {
			for el := range c.Elements() {
				if !yield(el) {
					return
				}
			}
		}
	}
}

// Registry holds glyphs by name and resolves components.
type Registry struct {
	glyphs map[string]*Glyph
}

func NewRegistry() *Registry {
	return &Registry{glyphs: make(map[string]*Glyph)}
}

// Add stores g, replacing any glyph of the same name.
func (r *Registry) Add(g *Glyph) {
	r.glyphs[g.Name] = g
}

// Remove deletes the glyph with the given name. Components referring to it
// fail to resolve afterwards.
func (r *Registry) Remove(name string) {
	delete(r.glyphs, name)
}

// Get returns the glyph with the given name.
func (r *Registry) Get(name string) (*Glyph, error) {
	g, ok := r.glyphs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGlyph, name)
	}
	return g, nil
}

// Resolve returns the glyph a component refers to.
func (r *Registry) Resolve(c Component) (*Glyph, error) {
	return r.Get(c.BaseName)
}

// Names returns the names of all glyphs, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.glyphs))
}

// Flatten returns copies of the named glyph's contours followed by those of
// its components, recursively, transformed into the glyph's coordinate
// system.
func (r *Registry) Flatten(name string) ([]*Contour, error) {
	g, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	visiting := mapset.NewThreadUnsafeSet(name)
	return r.flatten(g, Identity, visiting, nil)
}

func (r *Registry) flatten(g *Glyph, aff Affine, visiting mapset.Set[string], out []*Contour) ([]*Contour, error) {
	for _, c := range g.Contours {
		cc := c.Clone()
		if aff != Identity {
			cc.Transform(aff)
		}
		out = append(out, cc)
	}
	for _, comp := range g.Components {
		if visiting.Contains(comp.BaseName) {
			return nil, fmt.Errorf("%w: %s refers to %s", ErrComponentCycle, g.Name, comp.BaseName)
		}
		base, err := r.Resolve(comp)
		if err != nil {
			return nil, fmt.Errorf("resolving component of %s: %w", g.Name, err)
		}
		visiting.Add(comp.BaseName)
		out, err = r.flatten(base, aff.Mul(comp.Transform), visiting, out)
		if err != nil {
			return nil, err
		}
		visiting.Remove(comp.BaseName)
	}
	return out, nil
}
