package effects

import (
	"fmt"
	"strings"
)

// maxTypewriterSteps caps the staged drawtext windows emitted for the
// typewriter effect so very long captions stay within filter graph limits.
const maxTypewriterSteps = 60

// escapeDrawtext escapes the characters ffmpeg's drawtext parser treats
// specially inside the text option.
func escapeDrawtext(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(s)
}

// DrawtextFilters renders the overlay into one or more ffmpeg drawtext filter
// steps. start and duration are absolute seconds on the composed timeline;
// frameW/frameH is the output frame. Each returned step applies to the full
// video stream with an enable window.
func (o *TextOverlay) DrawtextFilters(frameW, frameH int, start, duration float64) []string {
	centered, cx, cy := o.AnchorXY(frameW, frameH)
	baseX := fmt.Sprintf("%d", cx)
	if centered {
		baseX = "(w-text_w)/2"
	}
	baseY := fmt.Sprintf("%d", cy)
	end := start + duration

	common := func(x, y, extra string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "drawtext=text='%s'", escapeDrawtext(o.Text))
		fmt.Fprintf(&b, ":font='%s':fontsize=%d:fontcolor=%s", o.Style.Font, o.Style.FontSize, o.Style.Color)
		if o.Style.StrokeWidth > 0 {
			fmt.Fprintf(&b, ":borderw=%d:bordercolor=%s", o.Style.StrokeWidth, o.Style.StrokeColor)
		}
		if o.Style.Plate {
			fmt.Fprintf(&b, ":box=1:boxcolor=%s@%.2f:boxborderw=20", o.Style.PlateColor, o.Style.PlateOpacity)
		}
		fmt.Fprintf(&b, ":x=%s:y=%s", x, y)
		if extra != "" {
			b.WriteString(extra)
		}
		fmt.Fprintf(&b, ":enable='between(t,%.3f,%.3f)'", start, end)
		return b.String()
	}

	// local time within the overlay window
	lt := fmt.Sprintf("(t-%.3f)", start)
	d := duration

	switch o.Effect {
	case KindFade:
		alpha := fmt.Sprintf(":alpha='clip(min(%s/%.2f,(%.3f-%s)/%.2f),0,1)'", lt, fadeRampSeconds, d, lt, fadeRampSeconds)
		return []string{common(baseX, baseY, alpha)}

	case KindSlide:
		off := float64(o.Style.FontSize*2) + slideOffscreenPad
		y := fmt.Sprintf("%s+if(lt(%s,%.3f),-%.1f*(1-%s/%.3f),-%.1f*((%s-%.3f)/%.3f))",
			baseY, lt, d/2, off, lt, d/2, off, lt, d/2, d/2)
		return []string{common(baseX, "'"+y+"'", "")}

	case KindZoom:
		// drawtext cannot scale text over time; approximate the pulse by
		// modulating alpha with the same envelope.
		alpha := fmt.Sprintf(":alpha='0.7+0.3*abs(sin(2*PI*%s/%.3f))'", lt, d)
		return []string{common(baseX, baseY, alpha)}

	case KindTypewriter:
		return o.typewriterFilters(baseX, baseY, start, duration)

	case KindBounce:
		amp := bounceAmplitude
		y := fmt.Sprintf("%s+%.1f*abs(sin(2*PI*%s/%.3f))", baseY, amp, lt, d)
		return []string{common(baseX, "'"+y+"'", "")}

	case KindWave:
		y := fmt.Sprintf("%s+%.1f*sin(%.0f*PI*%s/%.3f)", baseY, waveAmplitude, 2*waveCycles, lt, d)
		return []string{common(baseX, "'"+y+"'", "")}

	case KindGlitch:
		// Channel separation is not expressible in drawtext; emit the
		// positional jitter only.
		x := fmt.Sprintf("%s+if(lt(random(0),%.2f),%.1f*(2*random(1)-1),0)", baseX, glitchProb, glitchJitter)
		return []string{common("'"+x+"'", baseY, "")}

	case KindRotate:
		// drawtext has no rotation; approximate with a horizontal sway on the
		// same period.
		x := fmt.Sprintf("%s+20*sin(2*PI*%s/%.3f)", baseX, lt, d)
		return []string{common("'"+x+"'", baseY, "")}

	case KindSplit:
		x := fmt.Sprintf("%s+if(lt(%s,%.3f),-%d,if(lt(%s,%.3f),-%d,0))",
			baseX, lt, d/4, frameW/4, lt, d/2, frameW/8)
		return []string{common("'"+x+"'", baseY, "")}

	case KindHighlight:
		alpha := fmt.Sprintf(":alpha='clip(2*%s/%.3f,0,1)'", lt, d)
		return []string{common(baseX, baseY, alpha)}

	case KindGradient:
		alpha := fmt.Sprintf(":alpha='abs(sin(2*PI*%s/%.3f))'", lt, d)
		return []string{common(baseX, baseY, alpha)}

	default:
		alpha := fmt.Sprintf(":alpha='clip(min(%s/%.2f,(%.3f-%s)/%.2f),0,1)'", lt, fadeRampSeconds, d, lt, fadeRampSeconds)
		return []string{common(baseX, baseY, alpha)}
	}
}

// typewriterFilters stages prefix sub-windows of the text, one drawtext per
// step, so the text appears to be typed across the window.
func (o *TextOverlay) typewriterFilters(baseX, baseY string, start, duration float64) []string {
	runes := []rune(o.Text)
	steps := len(runes)
	if steps > maxTypewriterSteps {
		steps = maxTypewriterSteps
	}
	if steps == 0 {
		return nil
	}
	stepDur := duration / float64(steps)
	filters := make([]string, 0, steps)
	for i := 1; i <= steps; i++ {
		prefixLen := len(runes) * i / steps
		prefix := string(runes[:prefixLen])
		winStart := start + float64(i-1)*stepDur
		winEnd := start + duration
		if i < steps {
			winEnd = start + float64(i)*stepDur
		}
		var b strings.Builder
		fmt.Fprintf(&b, "drawtext=text='%s'", escapeDrawtext(prefix))
		fmt.Fprintf(&b, ":font='%s':fontsize=%d:fontcolor=%s", o.Style.Font, o.Style.FontSize, o.Style.Color)
		if o.Style.StrokeWidth > 0 {
			fmt.Fprintf(&b, ":borderw=%d:bordercolor=%s", o.Style.StrokeWidth, o.Style.StrokeColor)
		}
		fmt.Fprintf(&b, ":x=%s:y=%s:enable='between(t,%.3f,%.3f)'", baseX, baseY, winStart, winEnd)
		filters = append(filters, b.String())
	}
	return filters
}

// FilterSteps renders the tint as filter graph steps: a generated color
// source shaped by a geq alpha expression, then overlaid on the input label.
// The caller allocates the intermediate labels.
func (o TintOverlay) FilterSteps(frameW, frameH int, duration float64, maskLabel, inLabel, outLabel string) []string {
	var alphaExpr string
	switch o.Style {
	case OverlayGradient:
		alphaExpr = fmt.Sprintf("%.3f*255*(Y/%d)", o.Opacity, frameH)
	case OverlayVignette:
		alphaExpr = fmt.Sprintf("%.3f*255*clip(1-hypot((2*X-%d)/%d,(2*Y-%d)/%d),0,1)",
			o.Opacity, frameW, frameW, frameH, frameH)
	default:
		alphaExpr = fmt.Sprintf("%.3f*255", o.Opacity)
	}
	src := fmt.Sprintf("color=c=%s:s=%dx%d:d=%.3f,format=rgba,geq=r='r(X,Y)':g='g(X,Y)':b='b(X,Y)':a='%s'[%s]",
		o.Color, frameW, frameH, duration, alphaExpr, maskLabel)
	over := fmt.Sprintf("[%s][%s]overlay=0:0:shortest=1[%s]", inLabel, maskLabel, outLabel)
	return []string{src, over}
}
