package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"shortfactory/log"
)

var ErrEmptyCompletion = errors.New("empty completion response")

// ChatCompletion sends a single-turn prompt and returns the model's reply.
func (c *Client) ChatCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.GetLogger().Error("openai chat completion error", zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		log.GetLogger().Error("openai chat completion returned no choices")
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
