package domain

import "context"

// ChatMessage is one turn of an advisor conversation. Role is "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Attachment is binary input passed alongside a prompt
type Attachment struct {
	MIMEType string
	Data     []byte
}

type GenerateRequest struct {
	System      string
	Messages    []ChatMessage
	Attachments []Attachment
	Temperature float32
	MaxTokens   int32
	JSON        bool
}

// LanguageModel generates a text completion for a conversation
type LanguageModel interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
