package engine

import (
	"context"
	"fmt"

	"shortfactory/pkg/errors"
	"shortfactory/pkg/pexels"
	"shortfactory/pkg/pixabay"
)

// PexelsAssetProvider sources stock clips from Pexels.
type PexelsAssetProvider struct {
	Client *pexels.Client
}

func (p *PexelsAssetProvider) SearchClips(ctx context.Context, query string, count int) ([]ClipSource, error) {
	videos, err := p.Client.SearchVideos(ctx, query, count)
	if err != nil {
		return nil, err
	}
	sources := make([]ClipSource, 0, len(videos))
	for _, v := range videos {
		file, ok := v.BestFile()
		if !ok {
			continue
		}
		sources = append(sources, ClipSource{
			Id:       fmt.Sprintf("%d", v.Id),
			Url:      file.Link,
			Duration: float64(v.Duration),
		})
	}
	return sources, nil
}

func (p *PexelsAssetProvider) DownloadClip(ctx context.Context, src ClipSource, destPath string) error {
	return p.Client.Download(ctx, pexels.VideoFile{Link: src.Url}, destPath)
}

// PixabayMusicProvider sources background tracks from Pixabay.
type PixabayMusicProvider struct {
	Client *pixabay.Client
}

func (p *PixabayMusicProvider) FindTrack(ctx context.Context, mood string, duration float64) (*MusicSource, error) {
	track, err := p.Client.FindByMood(ctx, mood, duration)
	if err != nil {
		return nil, err
	}
	if track.Audio == "" {
		return nil, errors.ErrMusicNotFound
	}
	return &MusicSource{
		Id:  fmt.Sprintf("%d", track.Id),
		Url: track.Audio,
	}, nil
}

func (p *PixabayMusicProvider) DownloadTrack(ctx context.Context, src MusicSource, destPath string) error {
	return p.Client.Download(ctx, pixabay.Track{Audio: src.Url}, destPath)
}
