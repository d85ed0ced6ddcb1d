package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/CoderArchie/Membership-Manager/internal/classify"
	"github.com/CoderArchie/Membership-Manager/internal/config"
	"github.com/CoderArchie/Membership-Manager/internal/service"
	"github.com/CoderArchie/Membership-Manager/internal/store"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	categorizer := classify.Select(classify.ProviderOptions{
		UseAI:         cfg.UseAIClassification,
		Temperature:   cfg.LLMTemperature,
		GroqAPIKey:    cfg.GroqAPIKey,
		GroqModel:     cfg.GroqModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
	}, logger)

	analyzer := service.NewAnalyzer(cfg, categorizer, logger)
	memStore := store.NewMemoryStore()
	handler := service.NewHandler(analyzer, memStore, cfg.MaxUploadBytes, logger)

	mux := http.NewServeMux()
	handler.Register(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"User-Agent",
		},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}

	logger.Info("starting server", zap.Int("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
