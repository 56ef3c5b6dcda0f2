package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/pkg/config"
)

var sampleInput = ports.CandidateInput{
	JobTitle:        "Backend Geliştirici",
	JobDescription:  "Go ile mikroservis geliştirme",
	JobRequirements: "3+ yıl Go, PostgreSQL",
	CandidateName:   "Ayşe Yılmaz",
	ResumeText:      "5 yıl Go deneyimi",
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		`{"score":80}`:                         `{"score":80}`,
		"```json\n{\"score\":80}\n```":         `{"score":80}`,
		"Değerlendirme: {\"score\":80} bitti.": `{"score":80}`,
		"json yok":                             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, extractJSON(in), in)
	}
}

func TestToEvaluation_PuanSinirlanir(t *testing.T) {
	assert.Equal(t, 100, toEvaluation(evaluationPayload{Score: 140}, ProviderGemini).Score)
	assert.Equal(t, 0, toEvaluation(evaluationPayload{Score: -3}, ProviderGemini).Score)
	assert.Equal(t, 73, toEvaluation(evaluationPayload{Score: 72.6}, ProviderGemini).Score)

	ev := toEvaluation(evaluationPayload{Strengths: []string{" a ", "", "b", "c", "d", "e", "f"}}, ProviderAnthropic)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ev.Strengths)
	assert.NotNil(t, ev.Concerns)
	assert.Equal(t, ProviderAnthropic, ev.Provider)
}

func TestUserPrompt_IcerikVeKirpma(t *testing.T) {
	p := userPrompt(sampleInput)
	assert.Contains(t, p, "Backend Geliştirici")
	assert.Contains(t, p, "5 yıl Go deneyimi")
	assert.NotContains(t, p, "Ön yazı")

	long := strings.Repeat("ş", maxFieldRunes+10)
	assert.Equal(t, maxFieldRunes+1, len([]rune(truncate(long))))
}

func TestAnthropicService_EvaluateCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req.Model)
		assert.Contains(t, req.Messages[0].Content, "Ayşe Yılmaz")

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"` +
			"```json\\n{\\\"score\\\":88,\\\"summary\\\":\\\"Uygun\\\",\\\"strengths\\\":[\\\"Go\\\"],\\\"concerns\\\":[]}\\n```" +
			`"}]}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("test-key", "claude-test")
	s.url = srv.URL

	ev, err := s.EvaluateCandidate(context.Background(), sampleInput)
	require.NoError(t, err)
	assert.Equal(t, 88, ev.Score)
	assert.Equal(t, "Uygun", ev.Summary)
	assert.Equal(t, []string{"Go"}, ev.Strengths)
	assert.Equal(t, ProviderAnthropic, ev.Provider)
}

func TestAnthropicService_APIHatasi(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("bad", "claude-test")
	s.url = srv.URL

	_, err := s.EvaluateCandidate(context.Background(), sampleInput)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
	assert.NotContains(t, err.Error(), "bad", "anahtar hata mesajına sızmaz")
}

func TestGeminiService_EvaluateCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.Query().Get("key"), "anahtar URL'de taşınmaz")

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		require.NotNil(t, req.SystemInstruction)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"score\":41,\"summary\":\"Kısmen\",\"strengths\":[],\"concerns\":[\"PostgreSQL yok\"]}"}]}}]}`))
	}))
	defer srv.Close()

	s := NewGeminiService("g-key", "gemini-test")
	s.baseURL = srv.URL

	ev, err := s.EvaluateCandidate(context.Background(), sampleInput)
	require.NoError(t, err)
	assert.Equal(t, 41, ev.Score)
	assert.Equal(t, []string{"PostgreSQL yok"}, ev.Concerns)
	assert.Equal(t, ProviderGemini, ev.Provider)
}

func TestGeminiService_BosYanit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	s := NewGeminiService("g-key", "m")
	s.baseURL = srv.URL

	_, err := s.EvaluateCandidate(context.Background(), sampleInput)
	assert.Error(t, err)
}

func TestNewEvaluator(t *testing.T) {
	ev, err := NewEvaluator(config.AIConfig{Provider: ProviderAnthropic})
	require.NoError(t, err)
	assert.Nil(t, ev, "anahtar yoksa değerlendirici kapalı")

	ev, err = NewEvaluator(config.AIConfig{Provider: ProviderGemini, GeminiAPIKey: "k", GeminiModel: "m"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiService{}, ev)

	_, err = NewEvaluator(config.AIConfig{Provider: "openai"})
	assert.Error(t, err)
}
