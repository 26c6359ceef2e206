// Package preview rasterises generated copper to images for review.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"golang.org/x/sync/errgroup"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/pkg/colorutil"
	"pcb-ringroute/pkg/geometry"
)

// ColorMode selects how copper is coloured.
type ColorMode int

const (
	// ColorByLayer draws each copper layer in its layer colour.
	ColorByLayer ColorMode = iota
	// ColorByNet gives every net its own hue, back copper dimmed.
	ColorByNet
)

// ParseColorMode accepts "layer" or "net".
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "layer":
		return ColorByLayer, nil
	case "net":
		return ColorByNet, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

// Source is a document snapshot that can be drawn.
type Source interface {
	AllTraces() []document.Trace
	AllVias() []document.Via
	Footprints() []document.Footprint
}

// Options controls rendering.
type Options struct {
	// Scale is pixels per grid unit.
	Scale float64
	// Radius is the half-size of the drawn square around each board centre.
	Radius float64
	Colors ColorMode
}

// DefaultOptions draws a 3000 radius board at 0.2 px per unit.
func DefaultOptions() Options {
	return Options{Scale: 0.2, Radius: 3100, Colors: ColorByLayer}
}

// Renderer draws the boards of a panel.
type Renderer struct {
	Panel   *board.Panel
	Options Options
}

// viewport maps grid coordinates of one board to pixels.
type viewport struct {
	bounds geometry.Rect
	scale  float64
	size   int
}

func newViewport(center geometry.Point2D, radius, scale float64) viewport {
	bounds := geometry.CircleBounds(center, radius)
	return viewport{bounds: bounds, scale: scale, size: int(math.Ceil(bounds.Width * scale))}
}

// visible reports whether a shape of the given half-size at p reaches into
// the view.
func (v viewport) visible(p geometry.Point, half float64) bool {
	return v.bounds.Inset(-half).Contains(p.ToFloat())
}

func (v viewport) px(p geometry.Point) (float32, float32) {
	return float32((float64(p.X) - v.bounds.X) * v.scale), float32((float64(p.Y) - v.bounds.Y) * v.scale)
}

// RenderBoard draws everything owned by board b that reaches into the
// square of Options.Radius around its centre.
func (r Renderer) RenderBoard(src Source, b board.Board) *image.RGBA {
	opt := r.Options
	vp := newViewport(b.Center.ToFloat(), opt.Radius, opt.Scale)
	img := image.NewRGBA(image.Rect(0, 0, vp.size, vp.size))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorutil.Board), image.Point{}, draw.Src)

	owned := func(p geometry.Point) bool { return r.Panel.Owner(p).Index == b.Index }

	var traces []document.Trace
	for _, t := range src.AllTraces() {
		if owned(t.A) && (vp.visible(t.A, t.Width/2) || vp.visible(t.B, t.Width/2)) {
			traces = append(traces, t)
		}
	}
	// Back copper first so front copper stays on top.
	for _, layer := range []board.Layer{board.LayerBackCu, board.LayerFrontCu} {
		batches := make(map[color.RGBA]*vector.Rasterizer)
		var order []color.RGBA
		for _, t := range traces {
			if t.Layer != layer {
				continue
			}
			c := r.traceColor(t)
			z, ok := batches[c]
			if !ok {
				z = vector.NewRasterizer(vp.size, vp.size)
				batches[c] = z
				order = append(order, c)
			}
			addSegment(z, vp, t.A, t.B, t.Width)
		}
		for _, c := range order {
			batches[c].Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
		}
	}

	vias := vector.NewRasterizer(vp.size, vp.size)
	for _, v := range src.AllVias() {
		if owned(v.At) && vp.visible(v.At, v.Diameter/2) {
			addDisc(vias, vp, v.At, v.Diameter/2)
		}
	}
	vias.Draw(img, img.Bounds(), image.NewUniform(colorutil.Via), image.Point{})

	marks := vector.NewRasterizer(vp.size, vp.size)
	for _, fp := range src.Footprints() {
		if owned(fp.Position) && fp.Position != (geometry.Point{}) && vp.visible(fp.Position, 15) {
			addMarker(marks, vp, fp.Position, 15)
		}
	}
	marks.Draw(img, img.Bounds(), image.NewUniform(colorutil.Yellow), image.Point{})
	return img
}

// RenderAll draws every board of the panel in parallel. The source must be
// safe for concurrent reads.
func (r Renderer) RenderAll(ctx context.Context, src Source) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, len(r.Panel.Boards))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range r.Panel.Boards {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = r.RenderBoard(src, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r Renderer) traceColor(t document.Trace) color.RGBA {
	if r.Options.Colors == ColorByNet {
		c := colorutil.NetColor(t.Net)
		if t.Layer == board.LayerBackCu {
			c = colorutil.Dim(c, 0.6)
		}
		return c
	}
	if t.Layer == board.LayerBackCu {
		return colorutil.BackCopper
	}
	return colorutil.FrontCopper
}

// addSegment adds a round-ended stroke of width w from a to b.
func addSegment(z *vector.Rasterizer, vp viewport, a, b geometry.Point, w float64) {
	ax, ay := vp.px(a)
	bx, by := vp.px(b)
	hw := float32(math.Max(w*vp.scale/2, 0.5))
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l > 0 {
		// Same winding as addDisc so overlaps add instead of cancelling.
		nx, ny := -dy/l*hw, dx/l*hw
		z.MoveTo(ax-nx, ay-ny)
		z.LineTo(bx-nx, by-ny)
		z.LineTo(bx+nx, by+ny)
		z.LineTo(ax+nx, ay+ny)
		z.ClosePath()
	}
	addDisc(z, vp, a, w/2)
	addDisc(z, vp, b, w/2)
}

// addDisc adds a filled circle approximated by a polygon.
func addDisc(z *vector.Rasterizer, vp viewport, c geometry.Point, radius float64) {
	const sides = 16
	cx, cy := vp.px(c)
	pr := math.Max(radius*vp.scale, 0.5)
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / sides
		x := cx + float32(pr*math.Cos(a))
		y := cy + float32(pr*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// addMarker adds a small square at a footprint origin.
func addMarker(z *vector.Rasterizer, vp viewport, c geometry.Point, half float64) {
	cx, cy := vp.px(c)
	h := float32(math.Max(half*vp.scale, 1))
	z.MoveTo(cx-h, cy-h)
	z.LineTo(cx+h, cy-h)
	z.LineTo(cx+h, cy+h)
	z.LineTo(cx-h, cy+h)
	z.ClosePath()
}
