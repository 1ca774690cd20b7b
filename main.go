package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/transit-routes/api"
	"github.com/danielhkuo/transit-routes/cliparse"
	"github.com/danielhkuo/transit-routes/kv"
	"github.com/danielhkuo/transit-routes/router"
	"github.com/danielhkuo/transit-routes/store"
)

func main() {
	var err error

	// .env first so flags and real environment win
	cliparse.LoadDotEnv()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if len(cfg.Args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open local storage
	storage, err := kv.Open(ctx, cfg)
	if err != nil {
		slog.Error("storage open failed", "type", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	slog.Debug("Storage ready", "type", cfg.StoreType)

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	st := store.New(client, storage, api.ListOptions{Limit: cfg.RouteLimit})

	// Restore session, favourites and theme before anything else
	st.Hydrate(ctx)

	if cfg.Args[0] == "serve" {
		err = serve(ctx, st, cfg)
	} else {
		err = runCommand(ctx, st, os.Stdout, cfg.Args)
	}

	code := 0
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usage)
		code = 2
	case err != nil:
		slog.Debug("command failed", "command", cfg.Args[0], "error", err)
		code = 1
	}

	// os.Exit skips deferred calls
	storage.Close()
	stop()
	os.Exit(code)
}

// serve runs the HTTP API until ctx is cancelled
func serve(ctx context.Context, st *store.Store, cfg cliparse.Config) error {
	server := http.Server{
		Handler:           router.NewRouter(st, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}
