package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chatdesk "github.com/chatdesk/chatdesk"
	httpadapter "github.com/chatdesk/chatdesk/internal/adapters/http"
	"github.com/chatdesk/chatdesk/internal/adapters/llm"
	firestorestore "github.com/chatdesk/chatdesk/internal/adapters/storage/firestore"
	memstore "github.com/chatdesk/chatdesk/internal/adapters/storage/memory"
	pgstore "github.com/chatdesk/chatdesk/internal/adapters/storage/postgres"
	"github.com/chatdesk/chatdesk/internal/app/chat"
	"github.com/chatdesk/chatdesk/internal/config"
	"github.com/chatdesk/chatdesk/internal/domain"
	"github.com/chatdesk/chatdesk/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.Logger().Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.Init(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reply generator: mock for local dev, Gemini otherwise.
	var llmClient domain.LLMClient
	if cfg.UseMockLLM {
		log.Info("using mock LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Info("using Gemini LLM client", "model", cfg.ModelName)
		llmClient, err = llm.NewGeminiClient(ctx, llm.GeminiOptions{
			APIKey:        cfg.GeminiAPIKey,
			ModelName:     cfg.ModelName,
			MaxMessageLen: cfg.MaxMessageLen,
			HistoryWindow: cfg.HistoryWindow,
			Timeout:       cfg.GenerateTimeout,
		})
		if err != nil {
			log.Error("failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
	}

	var conversationStore domain.ConversationStore
	var messageStore domain.MessageStore

	switch cfg.StorageBackend {
	case "postgres":
		log.Info("using postgres storage")

		migrationsFS, err := fs.Sub(chatdesk.MigrationsFS, "migrations")
		if err != nil {
			log.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := pgstore.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := pgstore.NewStore(pool)
		conversationStore = store
		messageStore = store

	case "firestore":
		log.Info("using firestore storage", "project", cfg.GCPProjectID)

		store, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Error("failed to initialize firestore store", "error", err)
			os.Exit(1)
		}
		conversationStore = store
		messageStore = store

	default:
		log.Info("using in-memory storage")
		conversationStore = memstore.NewConversationStore()
		messageStore = memstore.NewMessageStore()
	}

	svc := chat.NewService(llmClient, conversationStore, messageStore, cfg.MaxMessageLen)
	handler := httpadapter.NewServer(svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("chatdesk API listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
