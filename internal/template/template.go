package template

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shortfactory/internal/effects"
	"shortfactory/internal/media"
	"shortfactory/internal/timeline"
	"shortfactory/internal/types"
	"shortfactory/log"
	"shortfactory/pkg/errors"
)

// Config holds the frame geometry shared by every style.
type Config struct {
	Width  int
	Height int
	Fps    int
	// TargetDuration caps the composed timeline; 0 means uncapped.
	TargetDuration float64
}

// DefaultConfig is the 9:16 short-form frame.
func DefaultConfig() Config {
	return Config{Width: 1080, Height: 1920, Fps: 30, TargetDuration: 60}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.ErrBadDimensions
	}
	if c.Fps <= 0 {
		return errors.WrapWithDetail(errors.CodeBadDimensions, "Dimensions must be positive",
			fmt.Sprintf("fps %d", c.Fps), nil)
	}
	return nil
}

// Template binds a style to a frame config and a prober. One pipeline serves
// every style; the Style record is the only thing that varies.
type Template struct {
	Style  Style
	Config Config
	Prober media.Prober
}

func New(style Style, cfg Config, prober media.Prober) *Template {
	return &Template{Style: style, Config: cfg, Prober: prober}
}

// Apply composes the clips into a render plan: preprocess, transition
// assembly, text, then tint. The clip list is never mutated and stage
// failures propagate without internal retries.
func (tp *Template) Apply(ctx context.Context, clips []string, musicPath string, text types.TextContent) (*media.RenderedVideo, error) {
	if len(clips) == 0 {
		return nil, errors.ErrEmptyClipList
	}
	if err := tp.Config.Validate(); err != nil {
		return nil, err
	}

	durations := make([]float64, len(clips))
	for i, clip := range clips {
		info, err := tp.Prober.Probe(clip)
		if err != nil {
			return nil, err
		}
		durations[i] = info.Duration
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rv := media.NewRenderedVideo(tp.Config.Width, tp.Config.Height)
	labels := make([]string, len(clips))
	for i, clip := range clips {
		rv.AddInput(clip)
		labels[i] = rv.NextLabel()
		rv.AppendStep(fmt.Sprintf("[%d:v]%s[%s]", i, tp.preprocessFilter(i, durations[i]), labels[i]))
	}
	log.GetLogger().Info("compose preprocess done",
		zap.String("style", tp.Style.Name), zap.Int("clips", len(clips)))

	starts, total := tp.assemble(rv, labels, durations)
	rv.SetDuration(total)
	log.GetLogger().Info("compose transitions done",
		zap.String("style", tp.Style.Name), zap.Float64("duration", total))

	if err := tp.applyText(rv, text, starts, durations, total); err != nil {
		return nil, err
	}
	log.GetLogger().Info("compose text done", zap.String("style", tp.Style.Name))

	// The tint washes over the text as well, so it composites last.
	if tp.Style.OverlayOpacity > 0 {
		tint := effects.NewTintOverlay(tp.Style.OverlayStyle, "black", tp.Style.OverlayOpacity)
		maskLabel := rv.NextLabel()
		outLabel := rv.NextLabel()
		for _, step := range tint.FilterSteps(tp.Config.Width, tp.Config.Height, total, maskLabel, rv.LastLabel(), outLabel) {
			rv.AppendStep(step)
		}
		rv.SetLastLabel(outLabel)
	}

	if musicPath != "" {
		rv.SetMusic(musicPath)
	}
	return rv, nil
}

// preprocessFilter normalizes one clip to the output frame: cover-scale,
// crop, square pixels, constant frame rate. Styles with motion overscan
// before cropping so the sway has room, and tilt alternating clips.
func (tp *Template) preprocessFilter(index int, duration float64) string {
	w, h, fps := tp.Config.Width, tp.Config.Height, tp.Config.Fps
	m := tp.Style.Motion

	var parts []string
	if m.Overscan > 1 {
		ow := int(float64(w) * m.Overscan)
		oh := int(float64(h) * m.Overscan)
		parts = append(parts,
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", ow, oh),
			fmt.Sprintf("crop=%d:%d:x='(iw-ow)/2':y='(ih-oh)/2+%.1f*sin(2*PI*t/%.3f)'", w, h, m.SwayPx, duration))
		if m.RotateDeg > 0 && index%2 == 0 {
			parts = append(parts, fmt.Sprintf("rotate=%.1f*PI/180:c=black", m.RotateDeg))
		}
		if m.ZoomPulse > 0 {
			parts = append(parts, fmt.Sprintf("zoompan=z='1+%.2f*abs(sin(2*PI*on/(%d*%.3f)))':d=1:s=%dx%d:fps=%d",
				m.ZoomPulse, fps, duration, w, h, fps))
		}
	} else {
		parts = append(parts,
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", w, h),
			fmt.Sprintf("crop=%d:%d", w, h))
	}
	parts = append(parts, "setsar=1", fmt.Sprintf("fps=%d", fps))
	return strings.Join(parts, ",")
}

// assemble joins the preprocessed clips per the style's transition and
// returns each clip's start time on the composed timeline plus the total
// duration. Fade-concat boundaries consume no time; xfade overlaps each
// boundary by the transition duration.
func (tp *Template) assemble(rv *media.RenderedVideo, labels []string, durations []float64) ([]float64, float64) {
	n := len(labels)
	starts := make([]float64, n)

	if n == 1 {
		rv.SetLastLabel(labels[0])
		return starts, durations[0]
	}

	if tp.Style.Transition == TransitionFadeConcat {
		d := tp.Style.TransitionDuration
		faded := make([]string, n)
		var total float64
		for i, label := range labels {
			starts[i] = total
			total += durations[i]
			out := rv.NextLabel()
			outStart := durations[i] - d
			if outStart < 0 {
				outStart = 0
			}
			rv.AppendStep(fmt.Sprintf("[%s]fade=t=in:st=0:d=%.2f,fade=t=out:st=%.3f:d=%.2f[%s]",
				label, d, outStart, d, out))
			faded[i] = out
		}
		var b strings.Builder
		for _, f := range faded {
			fmt.Fprintf(&b, "[%s]", f)
		}
		out := rv.NextLabel()
		fmt.Fprintf(&b, "concat=n=%d:v=1:a=0[%s]", n, out)
		rv.AppendStep(b.String())
		rv.SetLastLabel(out)
		return starts, total
	}

	td := tp.Style.TransitionDuration
	cur := labels[0]
	curEnd := durations[0]
	for i := 1; i < n; i++ {
		offset := curEnd - td
		if offset < 0 {
			offset = 0
		}
		starts[i] = offset
		out := rv.NextLabel()
		rv.AppendStep(fmt.Sprintf("[%s][%s]xfade=%s:duration=%.2f:offset=%.3f[%s]",
			cur, labels[i], tp.xfadeSpec(), td, offset, out))
		cur = out
		curEnd = offset + durations[i]
	}
	rv.SetLastLabel(cur)
	return starts, curEnd
}

func (tp *Template) xfadeSpec() string {
	switch tp.Style.Transition {
	case TransitionBlend:
		return "transition=custom:expr='A+(B-A)*abs(sin(PI*P))'"
	case TransitionWipe:
		return "transition=wipeleft"
	case TransitionCircle:
		return "transition=circleopen"
	default:
		return "transition=fade"
	}
}

// applyText layers the title or section texts, then the evenly slotted
// captions. Blank strings are skipped, so an all-empty TextContent leaves
// the video untouched.
func (tp *Template) applyText(rv *media.RenderedVideo, text types.TextContent, starts, durations []float64, total float64) error {
	w, h := tp.Config.Width, tp.Config.Height

	if tp.Style.Sectioned {
		if err := tp.applySections(rv, text, starts, durations); err != nil {
			return err
		}
	} else if strings.TrimSpace(text.Title) != "" {
		title, err := tp.titleOverlay(text.Title, tp.Style.TitleEffect)
		if err != nil {
			return err
		}
		dur := tp.Style.TitleDuration
		if dur <= 0 || dur > total {
			dur = total
		}
		for _, f := range title.DrawtextFilters(w, h, 0, dur) {
			rv.AppendVideoFilter(f)
		}
	}

	specs, err := tp.captionSpecs(text.Captions, total)
	if err != nil {
		return err
	}
	return timeline.AddCaptions(rv, specs)
}

// applySections places intro text on the first clip, outro on the last, and
// distributes the main narration across the middle clips with the section
// effect rotation.
func (tp *Template) applySections(rv *media.RenderedVideo, text types.TextContent, starts, durations []float64) error {
	w, h := tp.Config.Width, tp.Config.Height
	n := len(starts)
	textDur := tp.Style.TextDuration
	if textDur <= 0 {
		textDur = 3.0
	}
	window := func(i int) (float64, float64) {
		d := textDur
		if d > durations[i] {
			d = durations[i]
		}
		return starts[i], d
	}

	if strings.TrimSpace(text.Intro) != "" {
		o, err := tp.titleOverlay(text.Intro, tp.Style.SectionEffects.Intro)
		if err != nil {
			return err
		}
		start, dur := window(0)
		for _, f := range o.DrawtextFilters(w, h, start, dur) {
			rv.AppendVideoFilter(f)
		}
	}

	if strings.TrimSpace(text.Main) != "" && n > 2 {
		parts := splitSentences(text.Main, n-2)
		rotation := tp.Style.SectionEffects.Main
		for i, part := range parts {
			clipIdx := 1 + i
			kind := effects.KindFade
			if len(rotation) > 0 {
				kind = rotation[i%len(rotation)]
			}
			o, err := effects.NewCaption(part, kind, effects.TextStyle{
				Font:        tp.Style.CaptionFont,
				FontSize:    tp.Style.CaptionSize,
				StrokeWidth: tp.Style.CaptionStroke,
			}, tp.Style.CaptionPosition)
			if err != nil {
				return err
			}
			o.Y = tp.resolveY(tp.Style.CaptionY)
			start, dur := window(clipIdx)
			for _, f := range o.DrawtextFilters(w, h, start, dur) {
				rv.AppendVideoFilter(f)
			}
		}
	}

	if strings.TrimSpace(text.Outro) != "" {
		o, err := tp.titleOverlay(text.Outro, tp.Style.SectionEffects.Outro)
		if err != nil {
			return err
		}
		start, dur := window(n - 1)
		for _, f := range o.DrawtextFilters(w, h, start, dur) {
			rv.AppendVideoFilter(f)
		}
	}
	return nil
}

func (tp *Template) titleOverlay(text string, kind effects.Kind) (*effects.TextOverlay, error) {
	style := effects.TextStyle{
		Font:        tp.Style.TitleFont,
		FontSize:    tp.Style.TitleSize,
		StrokeWidth: tp.Style.TitleStroke,
	}
	var o *effects.TextOverlay
	var err error
	if tp.Style.TitlePlate {
		o, err = effects.NewTitle(text, kind, style, tp.Style.TitlePosition)
	} else {
		o, err = effects.NewCaption(text, kind, style, tp.Style.TitlePosition)
	}
	if err != nil {
		return nil, err
	}
	o.Y = tp.resolveY(tp.Style.TitleY)
	return o, nil
}

func (tp *Template) captionSpecs(captions []string, total float64) ([]timeline.CaptionSpec, error) {
	var overlays []*effects.TextOverlay
	for i, c := range captions {
		if strings.TrimSpace(c) == "" {
			continue
		}
		kind := effects.KindFade
		if len(tp.Style.CaptionEffects) > 0 {
			kind = tp.Style.CaptionEffects[i%len(tp.Style.CaptionEffects)]
		}
		o, err := effects.NewCaption(c, kind, effects.TextStyle{
			Font:        tp.Style.CaptionFont,
			FontSize:    tp.Style.CaptionSize,
			StrokeWidth: tp.Style.CaptionStroke,
		}, tp.Style.CaptionPosition)
		if err != nil {
			return nil, err
		}
		o.Y = tp.resolveY(tp.Style.CaptionY)
		overlays = append(overlays, o)
	}
	return timeline.Slots(overlays, total), nil
}

// resolveY maps a style Y to an absolute frame coordinate; negative values
// measure from the bottom edge, zero keeps the position anchor default.
func (tp *Template) resolveY(y int) int {
	if y < 0 {
		return tp.Config.Height + y
	}
	return y
}

// splitSentences breaks narration into at most maxParts pieces on sentence
// boundaries, merging the tail into the last piece.
func splitSentences(text string, maxParts int) []string {
	if maxParts < 1 {
		maxParts = 1
	}
	sentences := strings.SplitAfter(text, ". ")
	var parts []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(parts) < maxParts {
			parts = append(parts, s)
		} else {
			parts[len(parts)-1] += " " + s
		}
	}
	return parts
}
