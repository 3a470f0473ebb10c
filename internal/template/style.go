// Package template composes clips, transitions, tints, and text overlays
// into a render plan. All four built-in looks run through one pipeline; a
// Style record is pure data.
package template

import "shortfactory/internal/effects"

// TransitionKind selects how consecutive clips are joined.
type TransitionKind int

const (
	// TransitionFadeConcat fades each clip in and out and concatenates.
	// Boundaries consume no timeline duration.
	TransitionFadeConcat TransitionKind = iota
	// TransitionCrossfade is a linear xfade; each boundary overlaps the
	// neighbors by the transition duration.
	TransitionCrossfade
	// TransitionBlend is an xfade with a sinusoidal blend weight.
	TransitionBlend
	// TransitionWipe reveals the next clip behind a sliding edge.
	TransitionWipe
	// TransitionCircle reveals the next clip through a growing circle.
	TransitionCircle
)

// ConsumesDuration reports whether boundaries of this kind overlap clips.
func (k TransitionKind) ConsumesDuration() bool {
	return k != TransitionFadeConcat
}

// Motion holds the continuous camera movement applied to every clip.
type Motion struct {
	// Overscan is the scale factor applied before cropping back to frame
	// size; values above 1 leave room for sway. 0 disables motion.
	Overscan float64
	// SwayPx is the vertical crop sway amplitude in pixels.
	SwayPx float64
	// ZoomPulse is the zoompan amplitude above 1.0.
	ZoomPulse float64
	// RotateDeg tilts alternating clips by this many degrees.
	RotateDeg float64
}

// Style is the per-look parameter record consumed by the pipeline.
type Style struct {
	Name string

	Transition         TransitionKind
	TransitionDuration float64

	// Title treatment
	TitleEffect   effects.Kind
	TitleDuration float64
	TitlePosition effects.Position
	TitleY        int
	TitleFont     string
	TitleSize     int
	TitleStroke   int
	TitlePlate    bool

	// Caption treatment; effects rotate through CaptionEffects in order.
	CaptionEffects  []effects.Kind
	CaptionPosition effects.Position
	// CaptionY overrides the anchor; negative values measure from the
	// bottom edge of the frame.
	CaptionY      int
	CaptionFont   string
	CaptionSize   int
	CaptionStroke int

	// Overlay tint; OverlayOpacity 0 means no tint.
	OverlayStyle   effects.OverlayStyle
	OverlayOpacity float64

	Motion Motion

	// Sectioned maps intro/main/outro text onto the first/middle/last
	// clips instead of a single title.
	Sectioned      bool
	SectionEffects SectionEffects
	TextDuration   float64
}

// SectionEffects are the per-section effect choices for sectioned styles.
type SectionEffects struct {
	Intro effects.Kind
	Main  []effects.Kind
	Outro effects.Kind
}

// Modern: bold plate titles, zooming text, hard cuts softened by fades.
var Modern = Style{
	Name:               "modern",
	Transition:         TransitionFadeConcat,
	TransitionDuration: 0.5,
	TitleEffect:        effects.KindZoom,
	TitleDuration:      3.0,
	TitlePosition:      effects.PositionCenter,
	TitleFont:          "Arial-Bold",
	TitleSize:          60,
	TitleStroke:        2,
	TitlePlate:         true,
	CaptionEffects:     []effects.Kind{effects.KindFade},
	CaptionPosition:    effects.PositionBottom,
	CaptionFont:        "Arial",
	CaptionSize:        40,
	CaptionStroke:      2,
}

// Minimal: quiet typography, gentle crossfades, a soft gradient wash.
var Minimal = Style{
	Name:               "minimal",
	Transition:         TransitionCrossfade,
	TransitionDuration: 0.5,
	TitleEffect:        effects.KindFade,
	TitleDuration:      2.0,
	TitlePosition:      effects.PositionTop,
	TitleY:             50,
	TitleFont:          "Helvetica",
	TitleSize:          50,
	CaptionEffects:     []effects.Kind{effects.KindFade},
	CaptionPosition:    effects.PositionBottom,
	CaptionY:           -80,
	CaptionFont:        "Helvetica",
	CaptionSize:        30,
	OverlayStyle:       effects.OverlayGradient,
	OverlayOpacity:     0.2,
}

// Dynamic: camera motion on every clip, rotating effect roster, vignette.
var Dynamic = Style{
	Name:               "dynamic",
	Transition:         TransitionBlend,
	TransitionDuration: 0.7,
	TitleEffect:        effects.KindWave,
	TitleDuration:      3.0,
	TitlePosition:      effects.PositionTop,
	TitleY:             100,
	TitleFont:          "Impact",
	TitleSize:          60,
	TitleStroke:        3,
	CaptionEffects: []effects.Kind{
		effects.KindBounce, effects.KindSplit, effects.KindGlitch, effects.KindRotate,
	},
	CaptionPosition: effects.PositionBottom,
	CaptionY:        -150,
	CaptionFont:     "Arial-Bold",
	CaptionSize:     40,
	OverlayStyle:    effects.OverlayVignette,
	OverlayOpacity:  0.3,
	Motion: Motion{
		Overscan:  1.1,
		SwayPx:    20,
		ZoomPulse: 0.1,
		RotateDeg: 5,
	},
}

// AIDynamic: sectioned intro/main/outro narration over reveal transitions.
var AIDynamic = Style{
	Name:               "ai_dynamic",
	Transition:         TransitionCircle,
	TransitionDuration: 0.5,
	TitleEffect:        effects.KindZoom,
	TitlePosition:      effects.PositionCenter,
	TitleFont:          "Arial-Bold",
	TitleSize:          60,
	TitlePlate:         true,
	CaptionEffects:     []effects.Kind{effects.KindFade},
	CaptionPosition:    effects.PositionBottom,
	CaptionFont:        "Arial",
	CaptionSize:        40,
	CaptionStroke:      2,
	OverlayStyle:       effects.OverlayVignette,
	OverlayOpacity:     0.2,
	Sectioned:          true,
	SectionEffects: SectionEffects{
		Intro: effects.KindZoom,
		Main:  []effects.Kind{effects.KindFade, effects.KindSlide, effects.KindTypewriter},
		Outro: effects.KindSplit,
	},
	TextDuration: 3.0,
}

// AIDynamicModern is the modern substyle of the sectioned look: gradient
// wash and sliding-edge reveals instead of circles.
var AIDynamicModern = func() Style {
	s := AIDynamic
	s.Name = "ai_dynamic_modern"
	s.Transition = TransitionWipe
	s.OverlayStyle = effects.OverlayGradient
	return s
}()

var styleTable = map[string]Style{
	Modern.Name:          Modern,
	Minimal.Name:         Minimal,
	Dynamic.Name:         Dynamic,
	AIDynamic.Name:       AIDynamic,
	AIDynamicModern.Name: AIDynamicModern,
}

// StyleByName resolves a style name; ok is false for unknown names.
func StyleByName(name string) (Style, bool) {
	s, ok := styleTable[name]
	return s, ok
}

// StyleNames lists the registered styles in a stable order.
func StyleNames() []string {
	return []string{Modern.Name, Minimal.Name, Dynamic.Name, AIDynamic.Name, AIDynamicModern.Name}
}
