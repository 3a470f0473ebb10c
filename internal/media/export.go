package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"shortfactory/internal/storage"
	"shortfactory/internal/types"
	"shortfactory/log"
	"shortfactory/pkg/errors"
)

// Exporter turns a render plan into an encoded file. Each plan can be
// exported once; the plan is marked consumed before ffmpeg runs so a failed
// export cannot be retried against a stale plan.
type Exporter struct{}

// Export encodes the plan to outputPath with the given quality preset. The
// encode writes to a temp file in the destination directory and renames on
// success, so a failed run never leaves a partial output in place.
func (Exporter) Export(ctx context.Context, plan *RenderedVideo, outputPath string, quality types.Quality) error {
	if plan.Consumed() {
		return errors.ErrPlanConsumed
	}
	plan.markConsumed()

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.CodeFileWriteError, "Failed to create output directory", err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*.mp4")
	if err != nil {
		return errors.Wrap(errors.CodeFileWriteError, "Failed to create temp output", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	args := plan.BuildArgs(tmpPath, quality.Settings())
	log.GetLogger().Info("export started",
		zap.String("output", outputPath),
		zap.String("quality", string(quality)),
		zap.Int("inputs", len(plan.Inputs())),
		zap.Float64("duration", plan.Duration()))

	cmd := exec.CommandContext(ctx, storage.FfmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.GetLogger().Error("export ffmpeg error",
			zap.String("output", truncateOutput(output)),
			zap.Error(err))
		return errors.Wrap(errors.CodeEncodeFailed, "ffmpeg encode failed", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return errors.Wrap(errors.CodeFileWriteError, "Failed to move output into place", err)
	}
	log.GetLogger().Info("export finished", zap.String("output", outputPath))
	return nil
}

// truncateOutput keeps ffmpeg's stderr tail, where the actual error lands.
func truncateOutput(out []byte) string {
	const keep = 2000
	if len(out) <= keep {
		return string(out)
	}
	return fmt.Sprintf("...%s", out[len(out)-keep:])
}
