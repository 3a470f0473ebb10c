package effects

import (
	"strings"

	"shortfactory/pkg/errors"
)

// Position anchors for text overlays within the frame.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionCenter Position = "center"
	PositionCustom Position = "custom"
)

// TextStyle describes the static look of a text overlay. Zero values are
// filled by ApplyDefaults.
type TextStyle struct {
	Font        string
	FontSize    int
	Color       string
	StrokeColor string
	StrokeWidth int
	// Plate draws a semi-opaque box behind the text, the title treatment.
	Plate        bool
	PlateColor   string
	PlateOpacity float64
}

// ApplyDefaults fills unset style fields with caption defaults.
func (s *TextStyle) ApplyDefaults() {
	if s.Font == "" {
		s.Font = "Arial"
	}
	if s.FontSize == 0 {
		s.FontSize = 40
	}
	if s.Color == "" {
		s.Color = "white"
	}
	if s.StrokeColor == "" {
		s.StrokeColor = "black"
	}
	if s.PlateColor == "" {
		s.PlateColor = "black"
	}
	if s.PlateOpacity == 0 {
		s.PlateOpacity = 0.5
	}
}

// TextOverlay is one animated piece of text placed over a clip window.
type TextOverlay struct {
	Text     string
	Effect   Kind
	Style    TextStyle
	Position Position
	// X, Y are only consulted when Position is PositionCustom, except Y which
	// also overrides the vertical anchor for top placement when non-zero.
	X, Y int
	// Start and Duration are seconds relative to the clip the overlay rides.
	Start    float64
	Duration float64
}

// NewCaption builds a caption overlay. Text must be non-empty after trimming
// and the font size positive.
func NewCaption(text string, effect Kind, style TextStyle, pos Position) (*TextOverlay, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrEmptyText
	}
	style.ApplyDefaults()
	if style.FontSize <= 0 {
		return nil, errors.New(errors.CodeInvalidParams, "font size must be positive")
	}
	return &TextOverlay{
		Text:     text,
		Effect:   effect,
		Style:    style,
		Position: pos,
	}, nil
}

// NewTitle builds a title overlay, a caption with the plate treatment and a
// larger default size.
func NewTitle(text string, effect Kind, style TextStyle, pos Position) (*TextOverlay, error) {
	if style.FontSize == 0 {
		style.FontSize = 60
	}
	style.Plate = true
	o, err := NewCaption(text, effect, style, pos)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// AnchorXY resolves the overlay anchor inside a frame of the given size. The
// returned x is the drawtext left edge for centered text handled by the
// emitter; y is absolute.
func (o *TextOverlay) AnchorXY(frameW, frameH int) (centered bool, x, y int) {
	switch o.Position {
	case PositionTop:
		y = 50
		if o.Y != 0 {
			y = o.Y
		}
		return true, 0, y
	case PositionBottom:
		y = frameH - 100
		if o.Y != 0 {
			y = o.Y
		}
		return true, 0, y
	case PositionCustom:
		return false, o.X, o.Y
	default:
		return true, 0, frameH / 2
	}
}
