package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"focusbot/internal/config"
	"focusbot/internal/currency"
	"focusbot/internal/extract"
	"focusbot/internal/handler"
	"focusbot/internal/llm"
	"focusbot/internal/llm/providers"
	"focusbot/internal/router"
	"focusbot/internal/service"
	"focusbot/internal/session"
)

// @title FocusBot API
// @version 1.0
// @description Chat with a language model, query uploaded documents, embed videos and convert currencies.
// @BasePath /api/v1
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: reading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the language model client
	providers.RegisterAll()
	completer, err := llm.NewCompleter(ctx, &cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize %s completer: %w", cfg.LLM.Provider, err)
	}
	defer func() {
		if cerr := completer.Close(); cerr != nil {
			log.Printf("warning: closing completer: %v", cerr)
		}
	}()
	log.Printf("Language model: %s", completer.Name())

	// Initialize collaborators
	store := session.NewMemoryStore(cfg.Session.TTL)
	janitor := session.NewJanitor(store, cfg.Session.SweepInterval)
	extractor := extract.NewExtractor()
	rates := currency.NewClient(&cfg.Currency)

	// Initialize services
	sessionSvc := service.NewSessionService(store, cfg.Session)
	chatSvc := service.NewChatService(store, completer)
	docSvc := service.NewDocumentService(store, extractor, completer, cfg.Upload.MaxFileSizeMB)
	currencySvc := service.NewCurrencyService(rates)
	videoSvc := service.NewVideoService()

	// Setup router
	r := router.Setup(sessionSvc, router.Handlers{
		Session:  handler.NewSessionHandler(sessionSvc),
		Chat:     handler.NewChatHandler(chatSvc),
		Document: handler.NewDocumentHandler(docSvc),
		Currency: handler.NewCurrencyHandler(currencySvc),
		Video:    handler.NewVideoHandler(videoSvc),
		Health:   handler.NewHealthHandler(completer),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		janitor.Start(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("Server stopped")
	return nil
}
