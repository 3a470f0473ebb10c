package effects

import (
	"math"
	"math/rand"
)

// Kind identifies one text animation.
type Kind int

const (
	KindFade Kind = iota
	KindSlide
	KindZoom
	KindTypewriter
	KindBounce
	KindWave
	KindGlitch
	KindRotate
	KindSplit
	KindHighlight
	KindGradient
)

var kindNames = map[string]Kind{
	"fade":       KindFade,
	"slide":      KindSlide,
	"zoom":       KindZoom,
	"typewriter": KindTypewriter,
	"bounce":     KindBounce,
	"wave":       KindWave,
	"glitch":     KindGlitch,
	"rotate":     KindRotate,
	"split":      KindSplit,
	"highlight":  KindHighlight,
	"gradient":   KindGradient,
}

// ParseKind resolves an effect name. Unknown names fall back to fade so a
// typo in a style record degrades gracefully instead of failing the render.
func ParseKind(name string) Kind {
	if k, ok := kindNames[name]; ok {
		return k
	}
	return KindFade
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "fade"
}

// Params carries the frame and overlay geometry an effect needs. Rand is only
// consulted by glitch; leaving it nil makes glitch deterministic (no jitter).
type Params struct {
	FrameWidth    int
	FrameHeight   int
	OverlayWidth  int
	OverlayHeight int
	Amplitude     float64
	BaseY         float64
	Rand          *rand.Rand
}

// Transform is the evaluated state of an overlay at a point in time. Offsets
// are relative to the overlay's anchored position. Reveal is the fraction of
// the text visible, in [0,1]. ChannelShift is a horizontal RGB separation in
// pixels.
type Transform struct {
	OffsetX      float64
	OffsetY      float64
	Opacity      float64
	Scale        float64
	Rotation     float64
	Reveal       float64
	ChannelShift float64
}

func identity() Transform {
	return Transform{Opacity: 1, Scale: 1, Reveal: 1}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

const (
	fadeRampSeconds   = 0.5
	zoomPulseScale    = 0.3
	slideOffscreenPad = 100.0
	bounceAmplitude   = 50.0
	waveAmplitude     = 30.0
	waveCycles        = 2.0
	glitchProb        = 0.1
	glitchJitter      = 10.0
)

// Evaluate returns the transform for effect k at time t within a clip of the
// given duration. t outside [0,duration] is clamped. All kinds are defined at
// t=0 and t=duration.
func Evaluate(k Kind, t, duration float64, p Params) Transform {
	if duration <= 0 {
		return identity()
	}
	t = math.Max(0, math.Min(duration, t))
	tr := identity()

	switch k {
	case KindFade:
		tr.Opacity = fadeOpacity(t, duration)
	case KindSlide:
		offscreen := -(float64(p.OverlayHeight) + slideOffscreenPad)
		half := duration / 2
		if t < half {
			prog := t / half
			tr.OffsetY = offscreen * (1 - prog)
		} else {
			prog := (t - half) / half
			tr.OffsetY = offscreen * prog
		}
	case KindZoom:
		tr.Scale = 1 + zoomPulseScale*math.Sin(2*math.Pi*t/duration)
	case KindTypewriter:
		tr.Reveal = clamp01(t / duration)
	case KindBounce:
		amp := p.Amplitude
		if amp == 0 {
			amp = bounceAmplitude
		}
		tr.OffsetY = amp * math.Abs(math.Sin(2*math.Pi*t/duration))
	case KindWave:
		phase := float64(p.OverlayWidth)
		tr.OffsetY = waveAmplitude * math.Sin(2*waveCycles*math.Pi*t/duration+phase)
	case KindGlitch:
		if p.Rand != nil && p.Rand.Float64() < glitchProb {
			off := glitchJitter * (2*p.Rand.Float64() - 1)
			tr.OffsetX = off
			tr.ChannelShift = 2 * off
		}
	case KindRotate:
		tr.Rotation = 360 * t / duration
	case KindSplit:
		// Position jumps left, center-left, center at the quarter marks.
		switch {
		case t < duration/4:
			tr.OffsetX = -float64(p.FrameWidth) / 4
		case t < duration/2:
			tr.OffsetX = -float64(p.FrameWidth) / 8
		default:
			tr.OffsetX = 0
		}
	case KindHighlight:
		tr.Reveal = clamp01(2 * t / duration)
	case KindGradient:
		tr.Opacity = math.Abs(math.Sin(2 * math.Pi * t / duration))
	default:
		tr.Opacity = fadeOpacity(t, duration)
	}
	return tr
}

// fadeOpacity ramps in over the first half second and out over the last,
// clamped so clips shorter than one second stay well defined.
func fadeOpacity(t, duration float64) float64 {
	in := t / fadeRampSeconds
	out := (duration - t) / fadeRampSeconds
	return clamp01(math.Min(1, math.Min(in, out)))
}
