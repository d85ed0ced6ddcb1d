// Package config loads application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Statement parsing. Empty locale means auto: day-first (French
	// convention) wins for day/month-ambiguous dates.
	StatementLocale string
	MaxUploadBytes  int64

	// Recurrence detection. The regularity threshold is a tunable
	// business rule, not a derived constant: 0.5 keeps merchants whose
	// payment spacing deviates by less than half the expected gap.
	RegularityThreshold float64
	// Categorizer answers below this confidence degrade to Other.
	CategoryConfidenceFloor float64
	CategorizerTimeout      time.Duration

	// Monthly cost conversion factors per payment interval.
	WeeklyToMonthly    float64
	BiWeeklyToMonthly  float64
	QuarterlyToMonthly float64
	YearlyToMonthly    float64

	// AI classification (disabled by default; can be slow with Ollama).
	UseAIClassification bool
	LLMTemperature      float64

	GroqAPIKey    string
	GroqModel     string
	OllamaBaseURL string
	OllamaModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first; real env vars take precedence.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnvInt("PORT", 8112),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StatementLocale: getEnv("STATEMENT_LOCALE", ""),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		RegularityThreshold:     getEnvFloat("REGULARITY_THRESHOLD", 0.5),
		CategoryConfidenceFloor: getEnvFloat("CATEGORY_CONFIDENCE_FLOOR", 0.4),
		CategorizerTimeout:      getEnvDuration("CATEGORIZER_TIMEOUT", 20*time.Second),

		WeeklyToMonthly:    getEnvFloat("MONTHLY_FACTOR_WEEKLY", 4.33),
		BiWeeklyToMonthly:  getEnvFloat("MONTHLY_FACTOR_BIWEEKLY", 2.17),
		QuarterlyToMonthly: getEnvFloat("MONTHLY_FACTOR_QUARTERLY", 1.0/3.0),
		YearlyToMonthly:    getEnvFloat("MONTHLY_FACTOR_YEARLY", 1.0/12.0),

		UseAIClassification: getEnv("USE_AI_CLASSIFICATION", "false") == "true",
		LLMTemperature:      getEnvFloat("LLM_TEMPERATURE", 0.3),

		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		GroqModel:     getEnv("GROQ_MODEL_NAME", "llama-3.3-70b-versatile"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		OllamaModel:   getEnv("OLLAMA_MODEL_NAME", "llama3.2"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL_NAME", "gpt-4-turbo-preview"),
	}
}

// MonthlyFactors exposes the conversion factors keyed by interval.
func (c *Config) MonthlyFactors() map[domain.Interval]float64 {
	return map[domain.Interval]float64{
		domain.IntervalWeekly:    c.WeeklyToMonthly,
		domain.IntervalBiWeekly:  c.BiWeeklyToMonthly,
		domain.IntervalMonthly:   1,
		domain.IntervalQuarterly: c.QuarterlyToMonthly,
		domain.IntervalYearly:    c.YearlyToMonthly,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
