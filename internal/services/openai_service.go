package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/config"
)

// OpenAIService is the adapter for the OpenAI API. When no API key is
// configured the service stays disabled and callers fall back to the
// local template generator.
type OpenAIService struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewOpenAIService(cfg config.OpenAIConfig) *OpenAIService {
	return &OpenAIService{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Enabled reports whether an API key is configured.
func (s *OpenAIService) Enabled() bool {
	return s.apiKey != ""
}

// GenerateText sends a single-turn chat completion and returns the trimmed
// response text.
func (s *OpenAIService) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("openai is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client := openai.NewClient(
		option.WithAPIKey(s.apiKey),
	)

	var messages []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.model),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from openai")
	}

	logrus.WithFields(logrus.Fields{
		"model":         s.model,
		"input_tokens":  completion.Usage.PromptTokens,
		"output_tokens": completion.Usage.CompletionTokens,
	}).Debug("[OPENAI] Completion finished")

	return text, nil
}
