// Package ai aday değerlendirmesi için LLM sağlayıcı adaptörlerini (Anthropic, Gemini) içerir.
// Her iki adaptör de yalnızca net/http kullanır; resmi SDK gerekmez.
package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/ik-portal/internal/application/dto"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/pkg/config"
)

// Sağlayıcı adları.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

const (
	maxResponseBytes = 64 * 1024
	maxFieldRunes    = 12000 // modele gönderilen her serbest metin alanı için üst sınır
	maxListItems     = 5
)

const systemPrompt = `Sen Türkiye'de çalışan deneyimli bir insan kaynakları uzmanısın ve adayları iş ilanına göre değerlendiriyorsun.
YALNIZCA geçerli bir JSON nesnesi döndür (markdown yok, kod bloğu yok) ve tam olarak şu yapıyı kullan:
{
  "score": <0 ile 100 arasında tam sayı>,
  "summary": "<adayın ilana uygunluğunun Türkçe özeti, en fazla 400 karakter>",
  "strengths": ["<güçlü yön>", "..."],
  "concerns": ["<eksik ya da risk>", "..."]
}

Kurallar:
- score: 85-100 = çok uygun, 65-84 = uygun, 40-64 = kısmen uygun, <40 = uygun değil.
- strengths ve concerns en fazla 5 madde, her biri kısa ve somut.
- Adayın yaşı, cinsiyeti, medeni durumu, dini ya da etnik kökeni değerlendirmeye katılmaz.
- JSON dışında metin yazma.`

// evaluationPayload modelden beklenen JSON.
type evaluationPayload struct {
	Score     float64  `json:"score"`
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
}

// NewEvaluator yapılandırmadaki sağlayıcıyı döner. Anahtar tanımlı değilse nil, nil.
func NewEvaluator(cfg config.AIConfig) (ports.CandidateEvaluator, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, nil
		}
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	}
	return nil, fmt.Errorf("AI: desteklenmeyen sağlayıcı %q (anthropic|gemini)", cfg.Provider)
}

func userPrompt(in ports.CandidateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "İLAN: %s\n", truncate(in.JobTitle))
	fmt.Fprintf(&b, "İlan açıklaması:\n%s\n\n", truncate(in.JobDescription))
	fmt.Fprintf(&b, "Aranan nitelikler:\n%s\n\n", truncate(in.JobRequirements))
	fmt.Fprintf(&b, "ADAY: %s\n", truncate(in.CandidateName))
	if in.CoverLetter != "" {
		fmt.Fprintf(&b, "Ön yazı:\n%s\n\n", truncate(in.CoverLetter))
	}
	if in.ResumeText != "" {
		fmt.Fprintf(&b, "Özgeçmiş:\n%s\n", truncate(in.ResumeText))
	}
	return b.String()
}

// parseEvaluation model metnindeki JSON'u çözer ve normalleştirir.
func parseEvaluation(text, provider string) (*dto.CandidateEvaluation, error) {
	clean := extractJSON(text)
	if clean == "" {
		return nil, fmt.Errorf("AI: %s yanıtında JSON bulunamadı", provider)
	}
	var p evaluationPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, fmt.Errorf("AI: değerlendirme JSON'u çözülemedi: %w", err)
	}
	return toEvaluation(p, provider), nil
}

// toEvaluation puanı [0, 100] aralığına sıkıştırır ve listeleri kırpar.
func toEvaluation(p evaluationPayload, provider string) *dto.CandidateEvaluation {
	score := int(p.Score + 0.5)
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return &dto.CandidateEvaluation{
		Score:     score,
		Summary:   strings.TrimSpace(p.Summary),
		Strengths: cleanList(p.Strengths),
		Concerns:  cleanList(p.Concerns),
		Provider:  provider,
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		if len(out) == maxListItems {
			break
		}
	}
	return out
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxFieldRunes {
		return s
	}
	return string([]rune(s)[:maxFieldRunes]) + "…"
}

// jsonBlockRe model JSON'u markdown ile sarsa bile ilk '{' ile son '}' arasını yakalar.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON serbest metinden JSON nesnesini çıkarır:
//  1. Markdown kod bloklarını (```json … ```) kaldır.
//  2. Gerekirse regex ile ilk { … } bloğunu al.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
