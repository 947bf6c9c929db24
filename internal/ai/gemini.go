package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/fitnutri/internal/models"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the public endpoint; tests point it at a local server.
	BaseURL string
}

type GeminiClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL, APIVersion: "v1beta"}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(defaultTemperature),
			MaxOutputTokens: defaultMaxOutputTokens,
		},
	}, nil
}

func (client *GeminiClient) Name() string {
	return models.ProviderGemini
}

func (client *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := client.client.Models.GenerateContent(ctx, client.model, genai.Text(prompt), client.config)
	if err != nil {
		return "", geminiError(err)
	}
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", &ProviderError{Provider: models.ProviderGemini, Message: "response has no candidates"}
	}
	return response.Text(), nil
}

func geminiError(err error) error {
	providerErr := &ProviderError{Provider: models.ProviderGemini, Message: err.Error(), Err: err}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		providerErr.StatusCode = apiErr.Code
		providerErr.Message = apiErr.Message
	case errors.As(err, &apiErrPtr):
		providerErr.StatusCode = apiErrPtr.Code
		providerErr.Message = apiErrPtr.Message
	}
	return providerErr
}
