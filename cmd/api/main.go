// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/SameerKamani/SL-IT-AI/internal/agent"
	"github.com/SameerKamani/SL-IT-AI/internal/config"
	"github.com/SameerKamani/SL-IT-AI/internal/events"
	"github.com/SameerKamani/SL-IT-AI/internal/handler"
	"github.com/SameerKamani/SL-IT-AI/internal/llm"
	"github.com/SameerKamani/SL-IT-AI/internal/middleware"
	"github.com/SameerKamani/SL-IT-AI/internal/service"
	"github.com/SameerKamani/SL-IT-AI/internal/session"
	"github.com/SameerKamani/SL-IT-AI/internal/workflow"
	"github.com/SameerKamani/SL-IT-AI/pkg/logger"
	"github.com/SameerKamani/SL-IT-AI/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "sl-it-ai", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing")
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS when eventing is configured
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(ctx, events.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer publisher.Close()
	}

	// Initialize LLM client
	var llmClient llm.Client
	if cfg.AnthropicAPIKey != "" {
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	} else {
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	if err != nil {
		log.Error("failed to create LLM client", zap.Error(err))
		os.Exit(1)
	}
	llmClient = llm.Instrument(llmClient)

	// Initialize collaborators
	store := session.NewStore()
	extractor := agent.NewLLMExtractor(llmClient, cfg.LLMModel)
	classifier := agent.NewLLMClassifier(llmClient, cfg.LLMModel)
	templates := agent.NewTemplateRegistry(cfg.TemplatesDir)
	filler := agent.NewLLMFiller(llmClient, cfg.LLMModel)
	engine := workflow.NewLLMEngine(llmClient, cfg.LLMModel, classifier, templates, filler)

	// Initialize services
	chatSvc := service.NewChatService(store, extractor, engine, log)
	ticketSvc := service.NewTicketService(store, extractor, classifier, templates, filler, publisher, cfg.UploadDir, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(publisher)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	ticketHandler := handler.NewTicketHandler(ticketSvc, log)
	sessionHandler := handler.NewSessionHandler(store, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	// Wide-open CORS for development; tighten before exposing this
	// service beyond a trusted network.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(middleware.Auth(cfg.JWTSecret))
		}
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Chat)
		r.Post("/ticket", ticketHandler.Create)
		r.Post("/ticket_with_attachments", ticketHandler.CreateWithAttachments)
		r.Get("/session/{session_id}", sessionHandler.Get)
		r.Delete("/session/{session_id}", sessionHandler.Clear)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
