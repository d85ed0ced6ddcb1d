package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// LLMConfig configures an OpenAI-compatible chat-completions backend.
// Groq, Ollama and OpenAI all speak this API, so one client covers the
// three providers; only BaseURL, APIKey and Model differ.
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	HTTPTimeout time.Duration
}

// LLMCategorizer classifies merchants with a chat model. Calls are guarded
// by a circuit breaker so a flapping backend degrades to the fallback
// categorizer instead of stalling every upload.
type LLMCategorizer struct {
	cfg        LLMConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	retry      RetryConfig
	logger     *zap.Logger
}

// NewLLMCategorizer creates a chat-backed categorizer.
func NewLLMCategorizer(cfg LLMConfig, logger *zap.Logger) *LLMCategorizer {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm-categorizer",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
	return &LLMCategorizer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		breaker:    breaker,
		retry:      defaultLLMRetryConfig,
		logger:     logger,
	}
}

// classification is the JSON shape the model is asked to return.
type classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

const systemPrompt = "You are a financial transaction classifier. " +
	"Classify merchants into exactly one category. " +
	"Always respond with valid JSON only."

// Classify asks the model for a category. Any transport, API, or parse
// failure is returned as an error for the caller's fallback path.
func (c *LLMCategorizer) Classify(ctx context.Context, merchant string, samples []string) (domain.Category, float64, error) {
	prompt := fmt.Sprintf(
		"Classify this merchant into one category: Sport, Software, Streaming, News, Services, Other.\n\n"+
			"Merchant: %s\nSample statement descriptions:\n- %s\n\n"+
			`Return JSON only: {"category": string, "confidence": number between 0 and 1}`,
		merchant, strings.Join(samples, "\n- "))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return withRetry(ctx, c.retry, func(ctx context.Context) (*classification, error) {
			return c.call(ctx, prompt)
		})
	})
	if err != nil {
		return domain.CategoryOther, 0, err
	}

	cls := result.(*classification)
	return domain.ParseCategory(cls.Category), cls.Confidence, nil
}

// apiError carries the HTTP status so retry can tell transient failures
// (429, 5xx) from permanent ones.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("chat API error %d: %s", e.status, e.body)
}

func (e *apiError) Retryable() bool {
	return e.status == http.StatusTooManyRequests || e.status >= 500
}

func (c *LLMCategorizer) call(ctx context.Context, prompt string) (*classification, error) {
	reqBody := map[string]interface{}{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": c.cfg.Temperature,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat API call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apiError{status: resp.StatusCode, body: truncate(string(respBody), 200)}
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("parse chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty chat response")
	}

	// Strip markdown code fences if present.
	text := chatResp.Choices[0].Message.Content
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var cls classification
	if err := json.Unmarshal([]byte(text), &cls); err != nil {
		return nil, fmt.Errorf("parse classification: %w (text: %s)", err, truncate(text, 200))
	}
	return &cls, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
