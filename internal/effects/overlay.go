package effects

import "math"

// OverlayStyle selects the tint mask shape.
type OverlayStyle string

const (
	OverlayGradient OverlayStyle = "gradient"
	OverlayVignette OverlayStyle = "vignette"
	OverlaySolid    OverlayStyle = "solid"
)

// ParseOverlayStyle resolves a mask name, falling back to solid.
func ParseOverlayStyle(name string) OverlayStyle {
	switch name {
	case "gradient":
		return OverlayGradient
	case "vignette":
		return OverlayVignette
	default:
		return OverlaySolid
	}
}

// TintOverlay is a color wash over the full frame, shaped by a mask.
type TintOverlay struct {
	Style   OverlayStyle
	Color   string
	Opacity float64
}

// NewTintOverlay clamps opacity into [0,1].
func NewTintOverlay(style OverlayStyle, color string, opacity float64) TintOverlay {
	if color == "" {
		color = "black"
	}
	return TintOverlay{
		Style:   style,
		Color:   color,
		Opacity: clamp01(opacity),
	}
}

// MaskValue returns the mask intensity at normalized coordinates in [-1,1],
// where (0,0) is the frame center. Gradient ramps top to bottom, vignette is
// radially symmetric, solid is uniform.
func (o TintOverlay) MaskValue(x, y float64) float64 {
	switch o.Style {
	case OverlayGradient:
		return clamp01((y + 1) / 2)
	case OverlayVignette:
		return clamp01(1 - math.Sqrt(x*x+y*y))
	default:
		return 1
	}
}
