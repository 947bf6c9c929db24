package ai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/terraincognita07/fitnutri/internal/models"
)

const DefaultOpenAIModel = openai.GPT3Dot5Turbo

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ Client = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}
}

func (client *OpenAIClient) Name() string {
	return models.ProviderOpenAI
}

func (client *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := client.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: client.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxOutputTokens,
	})
	if err != nil {
		return "", openAIError(err)
	}
	if len(response.Choices) == 0 {
		return "", &ProviderError{Provider: models.ProviderOpenAI, Message: "response has no choices"}
	}
	return response.Choices[0].Message.Content, nil
}

func openAIError(err error) error {
	providerErr := &ProviderError{Provider: models.ProviderOpenAI, Message: err.Error(), Err: err}

	var apiErr *openai.APIError
	var requestErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		providerErr.StatusCode = apiErr.HTTPStatusCode
		providerErr.Message = apiErr.Message
	case errors.As(err, &requestErr):
		providerErr.StatusCode = requestErr.HTTPStatusCode
	}
	return providerErr
}
