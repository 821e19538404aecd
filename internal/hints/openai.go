package hints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const hintSystemPrompt = `You are a patient tutor. The learner answered a practice
question incorrectly. Give one short hint (at most two sentences) that nudges them
toward the right approach. Never state which option is correct.`

// OpenAIProvider implements Provider using the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a hint provider with the given credentials.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Hint(ctx context.Context, req Request) (*Hint, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	for i, c := range req.Choices {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, c)
	}
	fmt.Fprintf(&b, "The learner chose: %s\n", req.Chosen)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: hintSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: b.String()},
		},
		MaxCompletionTokens: 120,
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrUnavailable{Err: fmt.Errorf("no choices in response")}
	}
	return &Hint{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

// mapOpenAIError normalizes SDK errors into the package taxonomy.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return &ErrUnavailable{Err: err}
		}
	}
	return err
}
