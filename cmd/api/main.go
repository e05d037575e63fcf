package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sarderiftekhar/zzstay-com/internal/config"
	"github.com/sarderiftekhar/zzstay-com/internal/handler"
	"github.com/sarderiftekhar/zzstay-com/internal/service/ai"
	chatservice "github.com/sarderiftekhar/zzstay-com/internal/service/chat"
	"github.com/sarderiftekhar/zzstay-com/internal/service/hotels"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Fatal("ZHIPU_API_KEY is required: the service cannot answer without a chat model")
	}
	if !cfg.Hotels.Enabled() {
		log.Println("warning: LITEAPI_API_KEY not set, hotel searches will fail against the live API")
	}

	modelClient := ai.NewClient(cfg.AI)
	provider := hotels.NewLiteAPIClient(cfg.Hotels)
	executor := hotels.NewExecutor(provider, cfg.Hotels.GuestNationality)
	chatSvc := chatservice.NewService(modelClient, executor)

	router := handler.NewRouter(chatSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("zzstay backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
