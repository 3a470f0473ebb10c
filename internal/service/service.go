package service

import (
	"shortfactory/config"
	"shortfactory/internal/engine"
	"shortfactory/internal/media"
	openaiclient "shortfactory/pkg/openai"
	"shortfactory/pkg/oss"
	"shortfactory/pkg/pexels"
	"shortfactory/pkg/pixabay"
)

type Service struct {
	Engine *engine.Engine
}

// NewService wires the engine from the current configuration. Pixabay and
// OSS are optional; when unconfigured the engine skips music and upload.
func NewService() *Service {
	llm := openaiclient.NewClient(
		config.Conf.Llm.BaseUrl,
		config.Conf.Llm.ApiKey,
		config.Conf.Llm.Model,
		config.Conf.App.Proxy,
	)

	e := &engine.Engine{
		Script:   &engine.OpenAIScriptProvider{Client: llm},
		Assets:   &engine.PexelsAssetProvider{Client: pexels.NewClient(config.Conf.Pexels.ApiKey)},
		Prober:   media.CommandProber{},
		Exporter: media.Exporter{},
	}
	if config.Conf.Pixabay.ApiKey != "" {
		e.Music = &engine.PixabayMusicProvider{Client: pixabay.NewClient(config.Conf.Pixabay.ApiKey)}
	}
	if config.Conf.Oss.Enabled {
		e.Uploader = oss.NewClient(
			config.Conf.Oss.AccessKeyId,
			config.Conf.Oss.AccessKeySecret,
			config.Conf.Oss.Region,
			config.Conf.Oss.Bucket,
		)
	}
	return &Service{Engine: e}
}
