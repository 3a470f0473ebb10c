// Package media builds and executes ffmpeg invocation plans.
package media

import (
	"fmt"
	"strings"

	"shortfactory/internal/types"
)

// RenderedVideo is a fully specified ffmpeg invocation plan: input files, a
// filter_complex chain, and the label carrying the final video stream. It is
// produced by a template and consumed exactly once by the exporter.
type RenderedVideo struct {
	Width  int
	Height int

	inputs      []string
	filterSteps []string
	lastLabel   string
	audioInput  int
	hasAudio    bool
	duration    float64
	labelSeq    int
	consumed    bool
}

func NewRenderedVideo(width, height int) *RenderedVideo {
	return &RenderedVideo{Width: width, Height: height, audioInput: -1}
}

// AddInput registers an input file and returns its ffmpeg input index.
func (rv *RenderedVideo) AddInput(path string) int {
	rv.inputs = append(rv.inputs, path)
	return len(rv.inputs) - 1
}

// SetMusic registers an audio input to mux under the video.
func (rv *RenderedVideo) SetMusic(path string) {
	rv.audioInput = rv.AddInput(path)
	rv.hasAudio = true
}

// NextLabel allocates a fresh intermediate stream label.
func (rv *RenderedVideo) NextLabel() string {
	rv.labelSeq++
	return fmt.Sprintf("s%d", rv.labelSeq)
}

// AppendStep adds a raw filter_complex step. The caller manages its labels
// and must call SetLastLabel if the step produces the new final stream.
func (rv *RenderedVideo) AppendStep(step string) {
	rv.filterSteps = append(rv.filterSteps, step)
}

// AppendVideoFilter chains a filter onto the current final video stream and
// advances the final label past it.
func (rv *RenderedVideo) AppendVideoFilter(filter string) {
	out := rv.NextLabel()
	rv.filterSteps = append(rv.filterSteps, fmt.Sprintf("[%s]%s[%s]", rv.lastLabel, filter, out))
	rv.lastLabel = out
}

// SetLastLabel records which label carries the final video stream.
func (rv *RenderedVideo) SetLastLabel(label string) { rv.lastLabel = label }

func (rv *RenderedVideo) LastLabel() string { return rv.lastLabel }

func (rv *RenderedVideo) SetDuration(d float64) { rv.duration = d }

// Duration is the composed timeline length in seconds.
func (rv *RenderedVideo) Duration() float64 { return rv.duration }

func (rv *RenderedVideo) Inputs() []string { return rv.inputs }

// Consumed reports whether the plan has already been exported.
func (rv *RenderedVideo) Consumed() bool { return rv.consumed }

func (rv *RenderedVideo) markConsumed() { rv.consumed = true }

// BuildArgs assembles the full ffmpeg argument list for the plan, appending
// codec settings for the given quality and writing to outputPath.
func (rv *RenderedVideo) BuildArgs(outputPath string, q types.QualitySettings) []string {
	args := []string{"-y"}
	for _, in := range rv.inputs {
		args = append(args, "-i", in)
	}
	if len(rv.filterSteps) > 0 {
		args = append(args, "-filter_complex", strings.Join(rv.filterSteps, ";"))
		args = append(args, "-map", fmt.Sprintf("[%s]", rv.lastLabel))
	}
	if rv.hasAudio {
		args = append(args,
			"-map", fmt.Sprintf("%d:a", rv.audioInput),
			"-c:a", "aac", "-b:a", "192k",
			"-shortest",
		)
	} else {
		args = append(args, "-an")
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-b:v", q.Bitrate,
		"-r", fmt.Sprintf("%d", q.Fps),
		"-t", fmt.Sprintf("%.3f", rv.duration),
		outputPath,
	)
	return args
}
