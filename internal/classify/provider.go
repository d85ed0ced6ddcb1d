package classify

import (
	"time"

	"go.uber.org/zap"
)

// ProviderOptions selects and configures the categorization backend.
type ProviderOptions struct {
	UseAI       bool
	Temperature float64
	HTTPTimeout time.Duration

	GroqAPIKey string
	GroqModel  string

	OllamaBaseURL string
	OllamaModel   string

	OpenAIAPIKey string
	OpenAIModel  string
}

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	openAIBaseURL = "https://api.openai.com/v1"
)

// Select picks the categorization backend. Provider priority is
// Groq > Ollama > OpenAI; every AI backend is wrapped with a rule-based
// fallback so categorization failures degrade instead of aborting.
// With AI disabled or no provider configured, the rule-based categorizer
// is used directly.
func Select(opts ProviderOptions, logger *zap.Logger) Categorizer {
	rules := NewRuleBased()
	if !opts.UseAI {
		return rules
	}

	var llmCfg *LLMConfig
	switch {
	case opts.GroqAPIKey != "":
		llmCfg = &LLMConfig{BaseURL: groqBaseURL, APIKey: opts.GroqAPIKey, Model: opts.GroqModel}
	case opts.OllamaBaseURL != "":
		// Ollama ignores the key but the API requires a bearer token.
		llmCfg = &LLMConfig{BaseURL: opts.OllamaBaseURL, APIKey: "ollama", Model: opts.OllamaModel}
	case opts.OpenAIAPIKey != "":
		llmCfg = &LLMConfig{BaseURL: openAIBaseURL, APIKey: opts.OpenAIAPIKey, Model: opts.OpenAIModel}
	default:
		logger.Info("AI classification enabled but no provider configured, using rule-based categorizer")
		return rules
	}

	llmCfg.Temperature = opts.Temperature
	llmCfg.HTTPTimeout = opts.HTTPTimeout
	logger.Info("using AI categorizer", zap.String("base_url", llmCfg.BaseURL), zap.String("model", llmCfg.Model))
	return NewFallback(NewLLMCategorizer(*llmCfg, logger), rules, logger)
}
