package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
)

var _ ports.CandidateEvaluator = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adayları Google Gemini generateContent uç noktasıyla puanlar.
// Anahtar URL yerine x-goog-api-key başlığında gönderilir; böylece hata mesajlarına sızmaz.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiService model genelde "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // application/json: saf JSON döner
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func geminiErrorDetail(raw []byte) string {
	var body struct {
		Error struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil || body.Error.Message == "" {
		return ""
	}
	return body.Error.Status + ": " + body.Error.Message
}

func (s *GeminiService) EvaluateCandidate(ctx context.Context, in ports.CandidateInput) (*dto.CandidateEvaluation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY tanımlı değil")
	}
	header := http.Header{}
	header.Set("x-goog-api-key", s.apiKey)
	endpoint := s.baseURL + "/models/" + url.PathEscape(s.model) + ":generateContent"

	var out geminiResponse
	err := postJSON(ctx, s.client, "Gemini", endpoint, header, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: userPrompt(in)}}}},
		GenerationConfig: geminiGenConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2,
			MaxOutputTokens:  1024,
		},
	}, &out, geminiErrorDetail)
	if err != nil {
		return nil, err
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("AI: Gemini istemi engelledi: %s", out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini boş yanıt döndü")
	}
	return parseEvaluation(out.Candidates[0].Content.Parts[0].Text, ProviderGemini)
}
