package canvas

import "image/color"

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokePolyline
	OpFillCircle
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Rect   [4]float64 // x, y, w, h of a filled rectangle
	Points []Point    // vertices of a stroked poly-line
	Center Point      // centre of a filled circle
	Radius float64
	Color  color.Color
	Stroke Stroke
}

var _ Surface = &Recorder{}

// Recorder is a Surface that remembers every call instead of drawing.
type Recorder struct {
	Ops []Op
}

// FillRect implements Surface.
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: [4]float64{x, y, w, h}, Color: c})
}

// StrokePolyline implements Surface.
func (r *Recorder) StrokePolyline(points []Point, s Stroke) {
	pts := make([]Point, len(points))
	copy(pts, points)
	r.Ops = append(r.Ops, Op{Kind: OpStrokePolyline, Points: pts, Color: s.Color, Stroke: s})
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(x, y, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Center: Point{X: x, Y: y}, Radius: radius, Color: c})
}

// Filter returns the recorded calls of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
