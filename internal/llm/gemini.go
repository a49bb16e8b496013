package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const DefaultModelName = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model produced no text
var ErrEmptyResponse = errors.New("empty response from model")

// GeminiClient implements domain.LanguageModel on top of the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultModelName
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
		logger: log.With().Str("component", "gemini").Str("model", model).Logger(),
	}, nil
}

// Generate sends the conversation to the model and returns its text reply.
// When req.JSON is set the reply is stripped of markdown fences.
func (c *GeminiClient) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	contents := buildContents(req)
	if len(contents) == 0 {
		return "", domain.ErrEmptyPrompt
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, buildConfig(req))
	if err != nil {
		c.logger.Error().Err(err).Msg("Generate content failed")
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	if req.JSON {
		text = CleanJSON(text)
	}

	c.logger.Debug().Int("messages", len(req.Messages)).Int("response_len", len(text)).Msg("Generated content")
	return text, nil
}

func buildConfig(req domain.GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = req.MaxTokens
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

// buildContents maps chat history onto Gemini roles. Attachments ride on the
// last user turn.
func buildContents(req domain.GenerateRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Messages))
	lastUser := -1

	for _, m := range req.Messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		role := genai.RoleUser
		if m.Role == domain.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
		if role == genai.RoleUser {
			lastUser = len(contents) - 1
		}
	}

	if len(req.Attachments) == 0 {
		return contents
	}

	if lastUser == -1 {
		contents = append(contents, &genai.Content{Role: genai.RoleUser})
		lastUser = len(contents) - 1
	}
	for _, a := range req.Attachments {
		contents[lastUser].Parts = append(contents[lastUser].Parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: a.MIMEType, Data: a.Data},
		})
	}
	return contents
}

// CleanJSON removes markdown code fences and any text around the outermost
// JSON object or array.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	openCh, closeCh := "{", "}"
	if o, a := strings.Index(s, "{"), strings.Index(s, "["); a != -1 && (o == -1 || a < o) {
		openCh, closeCh = "[", "]"
	}
	if start := strings.Index(s, openCh); start != -1 {
		if end := strings.LastIndex(s, closeCh); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
