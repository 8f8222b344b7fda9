// Package render turns computed chart layouts into ordered lists of primitive
// draw commands. Planning is pure: the same layout always yields the same commands.
package render

import (
	"errors"
	"fmt"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/schema"
)

// Style holds the configurable look of both charts.
type Style struct {
	TextColor       schema.Color
	TextSize        float64
	Typeface        string // Font file, empty = surface default
	GridColor       schema.Color
	GridStrokeWidth float64
	LineStrokeWidth float64
	CornerRadius    float64
	CurrencySuffix  string // Appended to amount axis labels
}

// DefaultStyle returns the built-in chart style.
func DefaultStyle() Style {
	return Style{
		TextColor:       schema.Black,
		TextSize:        14,
		GridColor:       schema.Gray,
		GridStrokeWidth: 1,
		LineStrokeWidth: 6,
		CornerRadius:    40,
	}
}

func (s Style) textPaint(align schema.TextAlign) *schema.Paint {
	return &schema.Paint{
		Color:     s.TextColor,
		Style:     schema.FillStyle,
		TextSize:  s.TextSize,
		TextAlign: align,
		Typeface:  s.Typeface,
	}
}

func translate(dx, dy float64) schema.DrawCommand {
	return schema.DrawCommand{Kind: schema.TranslateCmd, Offset: schema.Point{X: dx, Y: dy}}
}

// ErrMissingPaint is returned by Replay for a drawing command without a paint.
var ErrMissingPaint = errors.New("draw command has no paint")

// Replay executes commands in order on a surface.
func Replay(cmds []schema.DrawCommand, surface contract.Surface) error {
	for i, cmd := range cmds {
		if cmd.Kind != schema.TranslateCmd && cmd.Paint == nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Kind, ErrMissingPaint)
		}
		switch cmd.Kind {
		case schema.TranslateCmd:
			surface.Translate(cmd.Offset.X, cmd.Offset.Y)
		case schema.LineCmd:
			surface.DrawLine(cmd.From, cmd.To, cmd.Paint)
		case schema.ArcCmd:
			surface.DrawArc(cmd.Bounds, cmd.StartAngle, cmd.SweepAngle, cmd.Paint)
		case schema.PathCmd:
			if cmd.Path == nil {
				return fmt.Errorf("command %d: path command without a path", i)
			}
			surface.DrawPath(cmd.Path, cmd.Paint)
		case schema.TextCmd:
			surface.DrawText(cmd.Text, cmd.At.X, cmd.At.Y, cmd.Paint)
		default:
			return fmt.Errorf("command %d: unknown draw command kind %q", i, cmd.Kind)
		}
	}
	return nil
}
