package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/magic-frog/cliparse"
	"github.com/danielhkuo/magic-frog/delegation"
	"github.com/danielhkuo/magic-frog/router"
	"github.com/danielhkuo/magic-frog/steem"
)

func main() {
	var err error

	// A missing .env is fine; real deployments use the environment
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Upstream clients
	steemClient := steem.NewClient(cfg.SteemURL, cfg.UpstreamTimeout)
	delegationClient := delegation.NewClient(cfg.DelegatorsURL, cfg.DelegatorsAPIKey, cfg.UpstreamTimeout)
	slog.Info("Upstream ready", "steem", cfg.SteemURL, "accounts", cfg.Accounts)

	// Create router
	handler := router.NewRouter(steemClient, delegationClient, cfg)

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("API listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
