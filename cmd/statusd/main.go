package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mvp-orchestrator/api/rest/routes"
	"mvp-orchestrator/config"
	"mvp-orchestrator/core/repository"
	"mvp-orchestrator/logging"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	db, err := repository.NewDB(context.Background(), cfg.AWSRegion)
	if err != nil {
		logging.Error(err, "connecting to store failed")
		os.Exit(1)
	}

	statusRepo := repository.NewStatusRepository(db.Client, cfg.StatusTable)

	r := mux.NewRouter()
	routes.SetupRoutes(r, statusRepo)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		logging.Info("starting status server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error(err, "server failed to start")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("shutting down server")
	if err := server.Shutdown(context.Background()); err != nil {
		logging.Error(err, "server forced to shutdown")
		os.Exit(1)
	}
	logging.Info("server exited")
}
