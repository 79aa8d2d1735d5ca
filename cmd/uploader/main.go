package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"glowcart/internal/config"
	"glowcart/internal/uploadserver"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[uploader] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	srv, err := uploadserver.New(cfg.UploadAddr, cfg.UploadDir, cfg.UploadURLBase, logger)
	if err != nil {
		logger.Fatalf("init upload server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting upload server on %s dir=%s", cfg.UploadAddr, cfg.UploadDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
