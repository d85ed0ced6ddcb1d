// Package classify provides pluggable merchant categorization backends:
// a rule-based keyword matcher and an LLM-backed classifier speaking the
// OpenAI-compatible chat API (Groq, Ollama, OpenAI).
package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// Categorizer maps a merchant and sample descriptions to an expense
// category with a confidence in [0,1]. The analysis pipeline is agnostic
// to which implementation is bound.
type Categorizer interface {
	Classify(ctx context.Context, merchant string, samples []string) (domain.Category, float64, error)
}

// Fallback tries a primary categorizer and degrades to a secondary one on
// failure. It never returns an error as long as the secondary succeeds.
type Fallback struct {
	primary   Categorizer
	secondary Categorizer
	logger    *zap.Logger
}

// NewFallback wires primary-then-secondary categorization.
func NewFallback(primary, secondary Categorizer, logger *zap.Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, logger: logger}
}

func (f *Fallback) Classify(ctx context.Context, merchant string, samples []string) (domain.Category, float64, error) {
	category, confidence, err := f.primary.Classify(ctx, merchant, samples)
	if err == nil {
		return category, confidence, nil
	}
	f.logger.Warn("primary categorizer failed, falling back",
		zap.String("merchant", merchant),
		zap.Error(err))
	return f.secondary.Classify(ctx, merchant, samples)
}
