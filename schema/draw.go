package schema

// Types describing primitive draw operations handed to a rendering surface.
type (
	// CommandKind identifies a draw primitive.
	CommandKind string

	// PaintStyle is the fill mode of a paint.
	PaintStyle string

	// StrokeCap is the decoration at the ends of a stroke.
	StrokeCap string

	// StrokeJoin is the decoration where stroke segments meet.
	StrokeJoin string

	// TextAlign is the horizontal anchor of drawn text.
	TextAlign string

	// PathOp is a single path verb.
	PathOp string
)

// All draw primitives.
const (
	TranslateCmd CommandKind = "translate"
	LineCmd      CommandKind = "line"
	ArcCmd       CommandKind = "arc"
	PathCmd      CommandKind = "path"
	TextCmd      CommandKind = "text"
)

// Paint styles.
const (
	StrokeStyle PaintStyle = "stroke"
	FillStyle   PaintStyle = "fill"
)

// Stroke caps.
const (
	ButtCap   StrokeCap = "butt"
	RoundCap  StrokeCap = "round"
	SquareCap StrokeCap = "square"
)

// Stroke joins.
const (
	MiterJoin StrokeJoin = "miter"
	RoundJoin StrokeJoin = "round"
	BevelJoin StrokeJoin = "bevel"
)

// Text alignments.
const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Path verbs.
const (
	MoveTo PathOp = "move"
	LineTo PathOp = "line"
)

// Point is a surface coordinate in pixels, Y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Paint carries everything a surface needs to style a primitive.
type Paint struct {
	Color        Color      `json:"color"`
	StrokeWidth  float64    `json:"stroke_width,omitempty"`
	Style        PaintStyle `json:"style,omitempty"`
	Cap          StrokeCap  `json:"cap,omitempty"`
	Join         StrokeJoin `json:"join,omitempty"`
	CornerRadius float64    `json:"corner_radius,omitempty"` // Rounds path joins, 0 = sharp
	TextSize     float64    `json:"text_size,omitempty"`
	TextAlign    TextAlign  `json:"text_align,omitempty"`
	Typeface     string     `json:"typeface,omitempty"` // Font file path, empty = surface default
}

// PathSegment is one verb of a path.
type PathSegment struct {
	Op PathOp `json:"op"`
	Point
}

// Path is an ordered list of move/line verbs.
type Path struct {
	Segments []PathSegment `json:"segments"`
}

// MoveTo starts a new sub-path at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, PathSegment{Op: MoveTo, Point: Point{X: x, Y: y}})
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, PathSegment{Op: LineTo, Point: Point{X: x, Y: y}})
}

// DrawCommand is one primitive operation. Only the fields relevant to Kind are set:
//   - TranslateCmd: Offset
//   - LineCmd: From, To, Paint
//   - ArcCmd: Bounds, StartAngle, SweepAngle, Paint
//   - PathCmd: Path, Paint
//   - TextCmd: Text, At, Paint
type DrawCommand struct {
	Kind       CommandKind `json:"kind"`
	Offset     Point       `json:"offset,omitzero"`
	From       Point       `json:"from,omitzero"`
	To         Point       `json:"to,omitzero"`
	Bounds     Rect        `json:"bounds,omitzero"`
	StartAngle float64     `json:"start_angle,omitempty"`
	SweepAngle float64     `json:"sweep_angle,omitempty"`
	Path       *Path       `json:"path,omitempty"`
	Text       string      `json:"text,omitempty"`
	At         Point       `json:"at,omitzero"`
	Paint      *Paint      `json:"paint,omitempty"`
}
