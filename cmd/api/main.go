package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/bahaa-alden/chatapp/cmd/api/router/v1"
	"github.com/bahaa-alden/chatapp/internal/identity"
	cacheadapter "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/adapter"
	"github.com/bahaa-alden/chatapp/internal/infrastructure/database"
	queueadapter "github.com/bahaa-alden/chatapp/internal/infrastructure/queue/adapter"
	"github.com/bahaa-alden/chatapp/internal/infrastructure/realtime"
	"github.com/bahaa-alden/chatapp/internal/pkg/chat/application/task"
	httpHandler "github.com/bahaa-alden/chatapp/internal/pkg/chat/presentation/http"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or could not be loaded", "error", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	cache, err := cacheadapter.NewRedisAdapter()
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	queueClient, err := queueadapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Error("failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	// Embedded worker: registers and consumes the notification fan-out task
	// alongside the API process.
	queueServer, err := queueadapter.NewAsynqServer()
	if err != nil {
		log.Error("failed to create queue server", "error", err)
		os.Exit(1)
	}
	task.RegisterFanoutNotificationsTask(queueServer, pool, cache)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go func() {
		if err := queueServer.Run(workerCtx); err != nil {
			log.Error("queue server stopped", "error", err)
		}
	}()

	verifier, err := identity.NewVerifierFromEnv()
	if err != nil {
		log.Error("failed to configure identity verifier", "error", err)
		os.Exit(1)
	}

	hub := realtime.NewHub(log)
	rtRouter := realtime.NewRouter(hub, verifier, log)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, httpHandler.Deps{
		Pool:   pool,
		Cache:  cache,
		Queue:  queueClient,
		Hub:    hub,
		Router: rtRouter,
		Log:    log,
	})

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Block until interrupted, then drain: close listeners, hang up sockets,
	// stop the worker, release connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	hub.Close()
	stopWorker()
	if err := queueServer.Stop(shutdownCtx); err != nil {
		log.Warn("queue server shutdown", "error", err)
	}
}
