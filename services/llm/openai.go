package llmsvc

import (
	"context"
	"math"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/trezcool/darasa/core"
)

type openAIClient struct {
	client *openai.Client
	model  string
}

var _ Client = (*openAIClient)(nil)

func NewOpenAIClient(conf *core.Config) *openAIClient {
	config := openai.DefaultConfig(conf.OpenAI.APIKey)
	if conf.OpenAI.BaseURL != "" {
		config.BaseURL = conf.OpenAI.BaseURL
	}
	return &openAIClient{
		client: openai.NewClientWithConfig(config),
		model:  conf.OpenAI.Model,
	}
}

func (c *openAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: oaMsgs,
		// a literal 0 is dropped by the client's omitempty and the API would
		// fall back to its default; the smallest non-zero value keeps sampling
		// effectively deterministic
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", errors.Wrap(err, "creating chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
