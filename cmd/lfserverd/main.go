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
	"github.com/rs/cors"

	"github.com/NicolasRojas07/LFbackend/internal/server"
	"github.com/NicolasRojas07/LFbackend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "[lfserverd] ", log.LstdFlags|log.Lshortfile)

	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := server.FromEnv()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.Printf("mongo: %s db=%s collection=%s", server.MaskMongoURI(cfg.MongoURI), cfg.MongoDB, cfg.TestsCollection)

	ctx := context.Background()
	st, err := store.NewMongoTestCaseStore(ctx, cfg.MongoURI, cfg.MongoDB, cfg.TestsCollection)
	if err != nil {
		logger.Fatalf("mongo: %v", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      c.Handler(server.New(cfg, st, logger)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		logger.Printf("mongo disconnect: %v", err)
	}
}
