// Package pexels wraps the Pexels video search API.
package pexels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"shortfactory/log"
	"shortfactory/pkg/errors"
)

const baseUrl = "https://api.pexels.com/v1"

type Client struct {
	http *resty.Client
}

func NewClient(apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseUrl).
		SetHeader("Authorization", apiKey)
	return &Client{http: c}
}

// Video is one search hit, reduced to the fields the pipeline needs.
type Video struct {
	Id       int         `json:"id"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Duration int         `json:"duration"`
	Files    []VideoFile `json:"video_files"`
}

type VideoFile struct {
	Id      int    `json:"id"`
	Quality string `json:"quality"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Link    string `json:"link"`
}

type searchResponse struct {
	Videos []Video `json:"videos"`
}

// SearchVideos queries portrait-orientation stock clips for a keyword.
func (c *Client) SearchVideos(ctx context.Context, query string, perPage int) ([]Video, error) {
	if perPage <= 0 {
		perPage = 5
	}
	var result searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    fmt.Sprintf("%d", perPage),
			"orientation": "portrait",
		}).
		SetResult(&result).
		Get("/videos/search")
	if err != nil {
		log.GetLogger().Error("pexels search error", zap.String("query", query), zap.Error(err))
		return nil, errors.Wrap(errors.CodeAssetSearchFailed, "Pexels search failed", err)
	}
	if resp.IsError() {
		log.GetLogger().Error("pexels search http error",
			zap.String("query", query), zap.Int("status", resp.StatusCode()))
		return nil, errors.WrapWithDetail(errors.CodeAssetSearchFailed, "Pexels search failed",
			fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}
	return result.Videos, nil
}

// BestFile picks the highest-resolution HD file of a video, falling back to
// the first file listed.
func (v Video) BestFile() (VideoFile, bool) {
	if len(v.Files) == 0 {
		return VideoFile{}, false
	}
	best := v.Files[0]
	for _, f := range v.Files[1:] {
		if f.Quality == "hd" && f.Height > best.Height {
			best = f
		}
	}
	return best, true
}

// Download fetches a video file to destPath.
func (c *Client) Download(ctx context.Context, file VideoFile, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return errors.Wrap(errors.CodeFileWriteError, "Failed to create asset directory", err)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetOutput(destPath).
		Get(file.Link)
	if err != nil {
		log.GetLogger().Error("pexels download error", zap.String("link", file.Link), zap.Error(err))
		return errors.Wrap(errors.CodeAssetDownload, "Asset download failed", err)
	}
	if resp.IsError() {
		return errors.WrapWithDetail(errors.CodeAssetDownload, "Asset download failed",
			fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}
	return nil
}
