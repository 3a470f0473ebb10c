// Package pixabay wraps the Pixabay music API for background tracks.
package pixabay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"go.uber.org/zap"

	"shortfactory/log"
	"shortfactory/pkg/errors"
)

const baseUrl = "https://pixabay.com/api/"

type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseUrl),
		apiKey: apiKey,
	}
}

// Track is one result reduced to what track selection needs.
type Track struct {
	Id       int    `json:"id"`
	Tags     string `json:"tags"`
	Duration int    `json:"duration"`
	Url      string `json:"url"`
	Audio    string `json:"audio"`
}

type searchResponse struct {
	Hits []Track `json:"hits"`
}

// Search queries tracks matching the query string.
func (c *Client) Search(ctx context.Context, query string) ([]Track, error) {
	var result searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": c.apiKey,
			"q":   query,
		}).
		SetResult(&result).
		Get("")
	if err != nil {
		log.GetLogger().Error("pixabay search error", zap.String("query", query), zap.Error(err))
		return nil, errors.Wrap(errors.CodeAssetSearchFailed, "Pixabay search failed", err)
	}
	if resp.IsError() {
		return nil, errors.WrapWithDetail(errors.CodeAssetSearchFailed, "Pixabay search failed",
			fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}
	return result.Hits, nil
}

// FindByMood picks the track whose tags best match the requested mood among
// tracks within ten seconds of the target duration. Tag matching tolerates
// near spellings via edit distance.
func (c *Client) FindByMood(ctx context.Context, mood string, targetDuration float64) (*Track, error) {
	tracks, err := c.Search(ctx, mood)
	if err != nil {
		return nil, err
	}

	candidates := lo.Filter(tracks, func(t Track, _ int) bool {
		diff := float64(t.Duration) - targetDuration
		return diff >= -10 && diff <= 10
	})
	if len(candidates) == 0 {
		candidates = tracks
	}
	if len(candidates) == 0 {
		return nil, errors.ErrMusicNotFound
	}

	best := candidates[0]
	bestScore := moodScore(best, mood)
	for _, t := range candidates[1:] {
		if s := moodScore(t, mood); s < bestScore {
			best, bestScore = t, s
		}
	}
	return &best, nil
}

// moodScore is the minimum edit distance between the mood and any tag.
func moodScore(t Track, mood string) int {
	mood = strings.ToLower(strings.TrimSpace(mood))
	best := len(mood) + 1
	for _, tag := range strings.Split(t.Tags, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		d := levenshtein.DistanceForStrings([]rune(tag), []rune(mood), levenshtein.DefaultOptions)
		if d < best {
			best = d
		}
	}
	return best
}

// Download fetches a track's audio file to destPath.
func (c *Client) Download(ctx context.Context, track Track, destPath string) error {
	if track.Audio == "" {
		return errors.ErrMusicNotFound
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return errors.Wrap(errors.CodeFileWriteError, "Failed to create music directory", err)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetOutput(destPath).
		Get(track.Audio)
	if err != nil {
		log.GetLogger().Error("pixabay download error", zap.Int("track", track.Id), zap.Error(err))
		return errors.Wrap(errors.CodeAssetDownload, "Asset download failed", err)
	}
	if resp.IsError() {
		return errors.WrapWithDetail(errors.CodeAssetDownload, "Asset download failed",
			fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}
	return nil
}
