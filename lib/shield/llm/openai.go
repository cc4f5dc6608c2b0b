package llm

import (
	"context"
	"errors"

	tokenizer "github.com/sandwich-go/gpt3-encoder"
	"github.com/sashabaranov/go-openai"
)

//go:generate moq --out mocks/openai_client.go --pkg mocks --with-resets --skip-ensure . OpenAIClient

// OpenAIClient is a subset of openai.Client used by the backend
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIConfig contains parameters of the OpenAI backend
type OpenAIConfig struct {
	Model             string // model name, gpt-4o-mini if empty
	MaxTokensResponse int    // hard limit for the number of tokens in the response
	MaxTokensRequest  int    // max request length in tokens, longer texts are truncated
	MaxSymbolsRequest int    // max request length in symbols, used if tokenizer failed
}

// OpenAI is a Backend for OpenAI chat completion api and compatible services
type OpenAI struct {
	client OpenAIClient
	params OpenAIConfig
}

// NewOpenAI makes an OpenAI backend with defaults applied
func NewOpenAI(client OpenAIClient, params OpenAIConfig) *OpenAI {
	if params.Model == "" {
		params.Model = "gpt-4o-mini"
	}
	if params.MaxTokensResponse == 0 {
		params.MaxTokensResponse = 256
	}
	if params.MaxTokensRequest == 0 {
		params.MaxTokensRequest = 1024
	}
	if params.MaxSymbolsRequest == 0 {
		params.MaxSymbolsRequest = 8192
	}
	return &OpenAI{client: client, params: params}
}

// Complete sends the prompt and the (truncated) text, returns the first choice content
func (o *OpenAI) Complete(ctx context.Context, system, text string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.params.Model,
		MaxTokens: o.params.MaxTokensResponse,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: o.reduce(text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// reduce truncates text to MaxTokensRequest tokens, or to MaxSymbolsRequest bytes if tokenizer failed
func (o *OpenAI) reduce(text string) string {
	bySymbols := func(text string) string {
		if len(text) <= o.params.MaxSymbolsRequest {
			return text
		}
		return text[:o.params.MaxSymbolsRequest]
	}

	encoder, err := tokenizer.NewEncoder()
	if err != nil {
		return bySymbols(text)
	}
	tokens, err := encoder.Encode(text)
	if err != nil {
		return bySymbols(text)
	}
	if len(tokens) <= o.params.MaxTokensRequest {
		return text
	}
	return encoder.Decode(tokens[:o.params.MaxTokensRequest])
}
