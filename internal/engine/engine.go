// Package engine orchestrates one video creation end to end: script, stock
// clips, music, compositing, and export.
package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shortfactory/internal/media"
	"shortfactory/internal/template"
	"shortfactory/internal/types"
	"shortfactory/log"
	"shortfactory/pkg/errors"
)

// ClipSource is a downloadable stock clip candidate.
type ClipSource struct {
	Id       string
	Url      string
	Duration float64
}

// MusicSource is a downloadable background track.
type MusicSource struct {
	Id  string
	Url string
}

// ScriptProvider generates the narration for a topic.
type ScriptProvider interface {
	GenerateScript(ctx context.Context, topic, platform string, duration float64) (types.Script, error)
	ExtractKeywords(ctx context.Context, script types.Script) ([]string, error)
}

// AssetProvider finds and downloads stock clips.
type AssetProvider interface {
	SearchClips(ctx context.Context, query string, count int) ([]ClipSource, error)
	DownloadClip(ctx context.Context, src ClipSource, destPath string) error
}

// MusicProvider finds and downloads a background track.
type MusicProvider interface {
	FindTrack(ctx context.Context, mood string, duration float64) (*MusicSource, error)
	DownloadTrack(ctx context.Context, src MusicSource, destPath string) error
}

// Uploader pushes a rendered file to remote storage. Optional.
type Uploader interface {
	UploadFile(ctx context.Context, key, localPath string) (string, error)
}

// Exporter encodes a render plan to a file. media.Exporter is the production
// implementation.
type Exporter interface {
	Export(ctx context.Context, plan *media.RenderedVideo, outputPath string, quality types.Quality) error
}

// ProgressFunc receives coarse progress updates during creation.
type ProgressFunc func(pct uint8, msg string)

// Engine wires the collaborators together. Zero-value optional fields are
// skipped (Uploader, Music).
type Engine struct {
	Script   ScriptProvider
	Assets   AssetProvider
	Music    MusicProvider
	Prober   media.Prober
	Exporter Exporter
	Uploader Uploader
}

// CreateVideoRequest describes one render job.
type CreateVideoRequest struct {
	TaskId    string
	Topic     string
	Style     string
	Quality   types.Quality
	MusicMood string
	Platforms []string
	ClipCount int
	Duration  float64
	WorkDir   string
	Progress  ProgressFunc
}

// Output is one exported file.
type Output struct {
	Platform  string
	Path      string
	RemoteKey string
}

const (
	retryAttempts  = 3
	retryBase      = 4 * time.Second
	retryCap       = 10 * time.Second
	defaultClips   = 3
	defaultSeconds = 30.0
)

// retryDelay is swapped out in tests to avoid real backoff sleeps.
var retryDelay = func(d time.Duration) <-chan time.Time { return time.After(d) }

// withRetry runs fn with fixed exponential backoff. Only model and network
// facing stages go through here; the render path is never retried.
func withRetry(ctx context.Context, name string, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBase << (attempt - 1)
			if delay > retryCap {
				delay = retryCap
			}
			log.GetLogger().Warn("retrying stage",
				zap.String("stage", name), zap.Int("attempt", attempt+1), zap.Duration("delay", delay))
			select {
			case <-retryDelay(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

// CreateVideo runs the full pipeline and returns one output per platform.
func (e *Engine) CreateVideo(ctx context.Context, req CreateVideoRequest) ([]Output, types.Script, error) {
	progress := req.Progress
	if progress == nil {
		progress = func(uint8, string) {}
	}
	if req.ClipCount <= 0 {
		req.ClipCount = defaultClips
	}
	if req.Duration <= 0 {
		req.Duration = defaultSeconds
	}
	if len(req.Platforms) == 0 {
		req.Platforms = []string{types.PlatformYouTubeShorts}
	}

	style, ok := template.StyleByName(req.Style)
	if !ok {
		return nil, types.Script{}, errors.WrapWithDetail(errors.CodeUnknownStyle, "Unknown template style", req.Style, nil)
	}

	progress(5, "generating script")
	var script types.Script
	err := withRetry(ctx, "script", func() error {
		var genErr error
		script, genErr = e.Script.GenerateScript(ctx, req.Topic, req.Platforms[0], req.Duration)
		return genErr
	})
	if err != nil {
		return nil, types.Script{}, errors.Wrap(errors.CodeScriptFailed, "Script generation failed", err)
	}

	progress(15, "extracting keywords")
	var keywords []string
	err = withRetry(ctx, "keywords", func() error {
		var kwErr error
		keywords, kwErr = e.Script.ExtractKeywords(ctx, script)
		return kwErr
	})
	if err != nil {
		return nil, script, errors.Wrap(errors.CodeKeywordsFailed, "Keyword extraction failed", err)
	}

	progress(25, "searching stock clips")
	clips, err := e.fetchClips(ctx, keywords, req)
	if err != nil {
		return nil, script, err
	}

	musicPath := ""
	if e.Music != nil && req.MusicMood != "" {
		progress(45, "finding music")
		musicPath, err = e.fetchMusic(ctx, req)
		if err != nil {
			// Music is an enhancement; a silent video still ships.
			log.GetLogger().Warn("music sourcing failed, continuing without audio",
				zap.String("mood", req.MusicMood), zap.Error(err))
			musicPath = ""
		}
	}

	progress(60, "compositing")
	outputs := make([]Output, 0, len(req.Platforms))
	for _, platform := range req.Platforms {
		w, h := types.PlatformDimensions(platform)
		cfg := template.DefaultConfig()
		cfg.Width, cfg.Height = w, h

		tpl := template.New(style, cfg, e.Prober)
		plan, err := tpl.Apply(ctx, clips, musicPath, script.TextContent())
		if err != nil {
			return nil, script, err
		}

		outPath := filepath.Join(req.WorkDir, fmt.Sprintf("%s_%s.mp4", req.TaskId, platform))
		if err := e.Exporter.Export(ctx, plan, outPath, req.Quality); err != nil {
			return nil, script, err
		}

		out := Output{Platform: platform, Path: outPath}
		if e.Uploader != nil {
			key := fmt.Sprintf("videos/%s/%s", req.TaskId, filepath.Base(outPath))
			if remoteKey, upErr := e.Uploader.UploadFile(ctx, key, outPath); upErr == nil {
				out.RemoteKey = remoteKey
			} else {
				log.GetLogger().Warn("upload failed, keeping local output",
					zap.String("path", outPath), zap.Error(upErr))
			}
		}
		outputs = append(outputs, out)
	}

	progress(100, "done")
	return outputs, script, nil
}

// fetchClips searches once and downloads the chosen candidates concurrently.
func (e *Engine) fetchClips(ctx context.Context, keywords []string, req CreateVideoRequest) ([]string, error) {
	query := req.Topic
	if len(keywords) > 0 {
		query = strings.Join(keywords, " ")
	}

	var sources []ClipSource
	err := withRetry(ctx, "clip search", func() error {
		var searchErr error
		sources, searchErr = e.Assets.SearchClips(ctx, query, req.ClipCount)
		return searchErr
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeAssetSearchFailed, "Clip search failed", err)
	}
	if len(sources) == 0 {
		return nil, errors.WrapWithDetail(errors.CodeAssetSearchFailed, "Clip search failed",
			fmt.Sprintf("no results for %q", query), nil)
	}
	if len(sources) > req.ClipCount {
		sources = sources[:req.ClipCount]
	}

	paths := make([]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			dest := filepath.Join(req.WorkDir, "clips", fmt.Sprintf("clip_%d.mp4", i))
			if err := withRetry(gctx, "clip download", func() error {
				return e.Assets.DownloadClip(gctx, src, dest)
			}); err != nil {
				return err
			}
			paths[i] = dest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.CodeAssetDownload, "Asset download failed", err)
	}
	return paths, nil
}

func (e *Engine) fetchMusic(ctx context.Context, req CreateVideoRequest) (string, error) {
	var track *MusicSource
	err := withRetry(ctx, "music search", func() error {
		var findErr error
		track, findErr = e.Music.FindTrack(ctx, req.MusicMood, req.Duration)
		return findErr
	})
	if err != nil {
		return "", err
	}
	if track == nil {
		return "", errors.ErrMusicNotFound
	}
	dest := filepath.Join(req.WorkDir, "music", "track.mp3")
	err = withRetry(ctx, "music download", func() error {
		return e.Music.DownloadTrack(ctx, *track, dest)
	})
	if err != nil {
		return "", err
	}
	return dest, nil
}
