package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shortfactory/internal/media"
	"shortfactory/internal/types"
	"shortfactory/pkg/errors"
)

type fakeScript struct {
	failuresLeft int
	calls        int
}

func (f *fakeScript) GenerateScript(ctx context.Context, topic, platform string, duration float64) (types.Script, error) {
	f.calls++
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return types.Script{}, fmt.Errorf("model unavailable")
	}
	return types.Script{
		Title:    "Test Title",
		Captions: []string{"cap one", "cap two"},
	}, nil
}

func (f *fakeScript) ExtractKeywords(ctx context.Context, script types.Script) ([]string, error) {
	return []string{"nature", "people"}, nil
}

type fakeAssets struct {
	searched string
}

func (f *fakeAssets) SearchClips(ctx context.Context, query string, count int) ([]ClipSource, error) {
	f.searched = query
	srcs := make([]ClipSource, count)
	for i := range srcs {
		srcs[i] = ClipSource{Id: fmt.Sprintf("c%d", i), Url: "http://x/clip", Duration: 5}
	}
	return srcs, nil
}

func (f *fakeAssets) DownloadClip(ctx context.Context, src ClipSource, destPath string) error {
	return nil
}

type fakeMusic struct {
	fail     bool
	nilTrack bool
}

func (f *fakeMusic) FindTrack(ctx context.Context, mood string, duration float64) (*MusicSource, error) {
	if f.fail {
		return nil, errors.ErrMusicNotFound
	}
	if f.nilTrack {
		return nil, nil
	}
	return &MusicSource{Id: "m1", Url: "http://x/track"}, nil
}

func (f *fakeMusic) DownloadTrack(ctx context.Context, src MusicSource, destPath string) error {
	return nil
}

type fakeExporter struct {
	exported []string
}

func (f *fakeExporter) Export(ctx context.Context, plan *media.RenderedVideo, outputPath string, quality types.Quality) error {
	if plan.Consumed() {
		return errors.ErrPlanConsumed
	}
	f.exported = append(f.exported, outputPath)
	return nil
}

type stubProber struct{ duration float64 }

func (p stubProber) Probe(string) (media.ProbeResult, error) {
	return media.ProbeResult{Width: 1920, Height: 1080, Duration: p.duration}, nil
}

func newTestEngine() (*Engine, *fakeScript, *fakeAssets, *fakeExporter) {
	script := &fakeScript{}
	assets := &fakeAssets{}
	exporter := &fakeExporter{}
	e := &Engine{
		Script:   script,
		Assets:   assets,
		Music:    &fakeMusic{},
		Prober:   stubProber{duration: 5},
		Exporter: exporter,
	}
	return e, script, assets, exporter
}

func baseRequest(t *testing.T) CreateVideoRequest {
	return CreateVideoRequest{
		TaskId:    "task1",
		Topic:     "ocean life",
		Style:     "modern",
		Quality:   types.QualityStandard,
		MusicMood: "calm",
		WorkDir:   t.TempDir(),
	}
}

func TestCreateVideoHappyPath(t *testing.T) {
	e, _, assets, exporter := newTestEngine()
	outputs, script, err := e.CreateVideo(context.Background(), baseRequest(t))
	assert.NoError(t, err)
	assert.Equal(t, "Test Title", script.Title)
	assert.Len(t, outputs, 1)
	assert.Equal(t, types.PlatformYouTubeShorts, outputs[0].Platform)
	assert.Len(t, exporter.exported, 1)
	assert.Equal(t, "nature people", assets.searched)
}

func TestCreateVideoMultiplePlatforms(t *testing.T) {
	e, _, _, exporter := newTestEngine()
	req := baseRequest(t)
	req.Platforms = []string{types.PlatformYouTubeShorts, types.PlatformTikTok}

	outputs, _, err := e.CreateVideo(context.Background(), req)
	assert.NoError(t, err)
	assert.Len(t, outputs, 2)
	// each platform gets its own plan; plans are single-use
	assert.Len(t, exporter.exported, 2)
}

func TestCreateVideoUnknownStyle(t *testing.T) {
	e, _, _, _ := newTestEngine()
	req := baseRequest(t)
	req.Style = "vaporwave"

	_, _, err := e.CreateVideo(context.Background(), req)
	assert.True(t, errors.Is(err, errors.CodeUnknownStyle))
}

func TestCreateVideoContinuesWithoutMusic(t *testing.T) {
	e, _, _, _ := newTestEngine()
	e.Music = &fakeMusic{fail: true}

	outputs, _, err := e.CreateVideo(context.Background(), baseRequest(t))
	assert.NoError(t, err)
	assert.Len(t, outputs, 1)
}

func TestCreateVideoNilTrackShipsSilent(t *testing.T) {
	e, _, _, exporter := newTestEngine()
	e.Music = &fakeMusic{nilTrack: true}

	outputs, _, err := e.CreateVideo(context.Background(), baseRequest(t))
	assert.NoError(t, err)
	assert.Len(t, outputs, 1)
	assert.Len(t, exporter.exported, 1)
}

func TestFetchMusicNilTrackReturnsNotFound(t *testing.T) {
	e, _, _, _ := newTestEngine()
	e.Music = &fakeMusic{nilTrack: true}

	req := baseRequest(t)
	_, err := e.fetchMusic(context.Background(), req)
	assert.True(t, errors.Is(err, errors.CodeMusicNotFound))
}

func TestCreateVideoProgressMonotonic(t *testing.T) {
	e, _, _, _ := newTestEngine()
	req := baseRequest(t)
	var pcts []uint8
	req.Progress = func(pct uint8, msg string) {
		pcts = append(pcts, pct)
	}

	_, _, err := e.CreateVideo(context.Background(), req)
	assert.NoError(t, err)
	assert.NotEmpty(t, pcts)
	for i := 1; i < len(pcts); i++ {
		assert.GreaterOrEqual(t, pcts[i], pcts[i-1])
	}
	assert.Equal(t, uint8(100), pcts[len(pcts)-1])
}

func TestCreateVideoRetriesScriptGeneration(t *testing.T) {
	original := retryDelay
	t.Cleanup(func() { retryDelay = original })
	retryDelay = func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	e, script, _, _ := newTestEngine()
	script.failuresLeft = 2

	_, _, err := e.CreateVideo(context.Background(), baseRequest(t))
	assert.NoError(t, err)
	assert.Equal(t, 3, script.calls)
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := withRetryForTest(t, func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	err := withRetryForTest(t, func() error {
		calls++
		return fmt.Errorf("permanent")
	})
	assert.Error(t, err)
	assert.Equal(t, retryAttempts, calls)
}

// withRetryForTest swaps the backoff for an immediate tick so retry tests
// run without real sleeps.
func withRetryForTest(t *testing.T, fn func() error) error {
	t.Helper()
	original := retryDelay
	t.Cleanup(func() { retryDelay = original })
	retryDelay = func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	return withRetry(context.Background(), "test", fn)
}
