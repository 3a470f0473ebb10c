package media

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"shortfactory/internal/storage"
	"shortfactory/log"
	"shortfactory/pkg/errors"
)

// ProbeResult carries the stream facts a template needs from an input clip.
type ProbeResult struct {
	Width    int
	Height   int
	Duration float64
}

// Prober inspects a media file. Templates take a Prober so tests can stub
// clip metadata without an ffprobe binary.
type Prober interface {
	Probe(path string) (ProbeResult, error)
}

// CommandProber shells out to ffprobe.
type CommandProber struct{}

var resolutionRe = regexp.MustCompile(`^(\d+)x(\d+)$`)

func (CommandProber) Probe(path string) (ProbeResult, error) {
	width, height, err := probeResolution(path)
	if err != nil {
		return ProbeResult{}, err
	}
	duration, err := probeDuration(path)
	if err != nil {
		return ProbeResult{}, err
	}
	return ProbeResult{Width: width, Height: height, Duration: duration}, nil
}

func probeResolution(path string) (int, int, error) {
	cmdArgs := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		path,
	}
	cmd := exec.Command(storage.FfprobePath, cmdArgs...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		log.GetLogger().Error("probe resolution failed", zap.String("output", out.String()), zap.Error(err))
		return 0, 0, errors.Wrap(errors.CodeProbeFailed, "Failed to probe media file", err)
	}

	output := strings.TrimSpace(out.String())
	output = strings.TrimSuffix(output, "x")

	dimensions := resolutionRe.FindStringSubmatch(output)
	if len(dimensions) != 3 {
		log.GetLogger().Error("probe resolution failed", zap.String("output", output))
		return 0, 0, errors.WrapWithDetail(errors.CodeProbeFailed, "Failed to probe media file", fmt.Sprintf("invalid resolution format: %s", output), nil)
	}

	width, _ := strconv.Atoi(dimensions[1])
	height, _ := strconv.Atoi(dimensions[2])
	return width, height, nil
}

func probeDuration(path string) (float64, error) {
	cmdArgs := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	}
	cmd := exec.Command(storage.FfprobePath, cmdArgs...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		log.GetLogger().Error("probe duration failed", zap.String("output", out.String()), zap.Error(err))
		return 0, errors.Wrap(errors.CodeProbeFailed, "Failed to probe media file", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		log.GetLogger().Error("probe duration failed", zap.String("output", out.String()), zap.Error(err))
		return 0, errors.WrapWithDetail(errors.CodeProbeFailed, "Failed to probe media file", fmt.Sprintf("invalid duration: %s", out.String()), nil)
	}
	return duration, nil
}
