package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
)

var _ ports.CandidateEvaluator = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService adayları Anthropic Messages API ile puanlar.
type AnthropicService struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		url:    anthropicMessagesURL,
		client: &http.Client{Timeout: 25 * time.Second},
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func anthropicErrorDetail(raw []byte) string {
	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil || body.Error.Type == "" {
		return ""
	}
	return body.Error.Type + ": " + body.Error.Message
}

func (s *AnthropicService) EvaluateCandidate(ctx context.Context, in ports.CandidateInput) (*dto.CandidateEvaluation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY tanımlı değil")
	}
	header := http.Header{}
	header.Set("x-api-key", s.apiKey)
	header.Set("anthropic-version", anthropicVersion)

	var out anthropicResponse
	err := postJSON(ctx, s.client, "Anthropic", s.url, header, anthropicRequest{
		Model:       s.model,
		MaxTokens:   1024,
		Temperature: 0.2,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: userPrompt(in)}},
	}, &out, anthropicErrorDetail)
	if err != nil {
		return nil, err
	}

	// Yalnızca metin blokları birleştirilir.
	var text strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	if out.StopReason == "max_tokens" {
		return nil, fmt.Errorf("AI: Anthropic yanıtı token sınırında kesildi")
	}
	return parseEvaluation(text.String(), ProviderAnthropic)
}
