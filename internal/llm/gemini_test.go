package llm

import (
	"testing"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1,2]\n```", `[1,2]`},
		{"surrounding prose", "Here you go: {\"a\":{\"b\":2}} hope that helps", `{"a":{"b":2}}`},
		{"array of objects", "[{\"a\":1},{\"a\":2}]", `[{"a":1},{"a":2}]`},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestBuildContents_MapsRoles(t *testing.T) {
	contents := buildContents(domain.GenerateRequest{
		Messages: []domain.ChatMessage{
			{Role: domain.ChatRoleUser, Content: "hi"},
			{Role: domain.ChatRoleAssistant, Content: "hello"},
			{Role: domain.ChatRoleUser, Content: "   "},
			{Role: domain.ChatRoleUser, Content: "plan my budget"},
		},
	})

	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "plan my budget", contents[2].Parts[0].Text)
}

func TestBuildContents_AttachmentsOnLastUserTurn(t *testing.T) {
	contents := buildContents(domain.GenerateRequest{
		Messages: []domain.ChatMessage{
			{Role: domain.ChatRoleUser, Content: "what is this receipt?"},
			{Role: domain.ChatRoleAssistant, Content: "send it"},
		},
		Attachments: []domain.Attachment{{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}},
	})

	require.Len(t, contents, 2)
	require.Len(t, contents[0].Parts, 2)
	assert.Equal(t, "image/jpeg", contents[0].Parts[1].InlineData.MIMEType)
}

func TestBuildContents_AttachmentOnly(t *testing.T) {
	contents := buildContents(domain.GenerateRequest{
		Attachments: []domain.Attachment{{MIMEType: "image/png", Data: []byte{1}}},
	})

	require.Len(t, contents, 1)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.NotNil(t, contents[0].Parts[0].InlineData)
}

func TestBuildConfig(t *testing.T) {
	cfg := buildConfig(domain.GenerateRequest{
		System:      "be brief",
		Temperature: 0.3,
		MaxTokens:   800,
		JSON:        true,
	})

	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.3, *cfg.Temperature, 1e-6)
	assert.Equal(t, int32(800), cfg.MaxOutputTokens)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)

	empty := buildConfig(domain.GenerateRequest{})
	assert.Nil(t, empty.SystemInstruction)
	assert.Nil(t, empty.Temperature)
	assert.Empty(t, empty.ResponseMIMEType)
}
