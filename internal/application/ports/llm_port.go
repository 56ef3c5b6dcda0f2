package ports

import (
	"context"

	"github.com/jhoicas/ik-portal/internal/application/dto"
)

// CandidateInput LLM'e gönderilen aday ve ilan bilgisi.
type CandidateInput struct {
	JobTitle        string
	JobDescription  string
	JobRequirements string
	CandidateName   string
	CoverLetter     string
	ResumeText      string
}

// CandidateEvaluator adayı ilana göre puanlayan LLM portu (Anthropic, Gemini).
// ctx bir zaman aşımı taşımalıdır.
type CandidateEvaluator interface {
	EvaluateCandidate(ctx context.Context, in CandidateInput) (*dto.CandidateEvaluation, error)
}
