package openai

import (
	"net/http"

	"github.com/sashabaranov/go-openai"

	"shortfactory/config"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseUrl, apiKey, model, proxyAddr string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	transport := &http.Transport{}
	if proxyAddr != "" {
		transport.Proxy = http.ProxyURL(config.Conf.App.ParsedProxy)
	}

	cfg.HTTPClient = &http.Client{
		Transport: transport,
	}

	client := openai.NewClientWithConfig(cfg)
	return &Client{client: client, model: model}
}
