// Package timeline places caption overlays onto a composed video timeline.
package timeline

import (
	"fmt"

	"shortfactory/internal/effects"
	"shortfactory/internal/media"
	"shortfactory/pkg/errors"
)

// CaptionSpec is one caption scheduled on the timeline in absolute seconds.
type CaptionSpec struct {
	Overlay *effects.TextOverlay
	Start   float64
	End     float64
}

// Validate checks the caption window against the total video duration.
func (c CaptionSpec) Validate(totalDuration float64) error {
	if c.Start < 0 || c.End > totalDuration+1e-9 {
		return errors.WrapWithDetail(errors.CodeBadCaptionTiming, "Caption window out of range",
			fmt.Sprintf("window [%.2f,%.2f] outside [0,%.2f]", c.Start, c.End, totalDuration), nil)
	}
	if c.Start >= c.End {
		return errors.WrapWithDetail(errors.CodeBadCaptionTiming, "Caption start must precede end",
			fmt.Sprintf("start %.2f not before end %.2f", c.Start, c.End), nil)
	}
	return nil
}

// Slots divides the total duration evenly across the given overlays, caption
// i getting [i*slot, (i+1)*slot). A nil or empty overlay list yields nil.
func Slots(overlays []*effects.TextOverlay, totalDuration float64) []CaptionSpec {
	n := len(overlays)
	if n == 0 {
		return nil
	}
	slot := totalDuration / float64(n)
	specs := make([]CaptionSpec, 0, n)
	for i, o := range overlays {
		specs = append(specs, CaptionSpec{
			Overlay: o,
			Start:   float64(i) * slot,
			End:     float64(i+1) * slot,
		})
	}
	// Absorb float drift so the last caption ends exactly at the video end.
	specs[n-1].End = totalDuration
	return specs
}

// Filters renders the scheduled captions into drawtext filter steps, in list
// order so later captions stack above earlier ones. An empty schedule returns
// nil, leaving the video untouched.
func Filters(specs []CaptionSpec, frameW, frameH int, totalDuration float64) ([]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	var out []string
	for _, s := range specs {
		if err := s.Validate(totalDuration); err != nil {
			return nil, err
		}
		out = append(out, s.Overlay.DrawtextFilters(frameW, frameH, s.Start, s.End-s.Start)...)
	}
	return out, nil
}

// AddCaptions chains the scheduled captions onto the video's final stream.
// An empty schedule is a no-op.
func AddCaptions(video *media.RenderedVideo, specs []CaptionSpec) error {
	filters, err := Filters(specs, video.Width, video.Height, video.Duration())
	if err != nil {
		return err
	}
	for _, f := range filters {
		video.AppendVideoFilter(f)
	}
	return nil
}
