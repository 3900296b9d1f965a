package openrouter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
	"github.com/synergyhealth/hospital-discovery/pkg/config"
	apperrors "github.com/synergyhealth/hospital-discovery/pkg/errors"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client is the secondary completion provider, reached through OpenRouter's
// OpenAI-compatible API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenRouter client. Callers treat a missing API key
// as "secondary provider unavailable" and simply omit this client from the
// chain.
func NewClient(cfg *config.OpenRouterConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openrouter api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = defaultBaseURL

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Name implements providers.CompletionProvider.
func (c *Client) Name() string {
	return "openrouter"
}

// Complete implements providers.CompletionProvider.
func (c *Client) Complete(ctx context.Context, req providers.CompletionRequest) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.Images) == 0 {
		user.Content = req.Prompt
	} else {
		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
		}
		for _, img := range req.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data)),
				},
			})
		}
		user.MultiContent = parts
	}
	messages = append(messages, user)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", apperrors.NewExternalError("openrouter request failed", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openrouter response missing output text")
	}
	return resp.Choices[0].Message.Content, nil
}
