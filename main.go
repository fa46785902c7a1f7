package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	api "messenger-notifier/cmd/api"
	chatRepo "messenger-notifier/internal/chat/repository"
	"messenger-notifier/internal/notification"
	"messenger-notifier/internal/notification/metrics"
	"messenger-notifier/internal/notification/usecase"
	userRepo "messenger-notifier/internal/user/repository"
	"messenger-notifier/pkg/config"
	"messenger-notifier/pkg/fcm"
	"messenger-notifier/pkg/firebase"
	"messenger-notifier/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Outputs:  cfg.LogOutputs,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One Firebase app per process; Firestore and FCM share it
	app, err := firebase.Init(ctx, cfg.GoogleProjectID, cfg.FirebaseCredentials)
	if err != nil {
		zl.Fatal("Failed to initialize Firebase", zap.Error(err))
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		zl.Fatal("Failed to initialize Firestore client", zap.Error(err))
	}
	defer firestoreClient.Close()

	fcmClient, err := fcm.NewClient(ctx, app, zl)
	if err != nil {
		zl.Fatal("Failed to initialize FCM client", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	notifier := usecase.NewNotifier(
		userRepo.NewUserRepository(firestoreClient),
		chatRepo.NewMessageRepository(firestoreClient),
		fcmClient,
		zl,
		usecase.WithMetrics(metrics.New(registry)),
	)

	// Pub/Sub ingress, only when a topic is configured. It outlives the signal
	// context so in-flight messages finish before the clients close.
	subCtx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()
	var subscriberDone chan error
	if cfg.PubSubTopic != "" {
		var opts []option.ClientOption
		if cfg.FirebaseCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentials))
		}
		subscriber, err := notification.NewService(subCtx, cfg.GoogleProjectID, cfg.PubSubTopic, cfg.PubSubSubscription,
			cfg.PubSubMaxOutstanding, notifier, zl, opts...)
		if err != nil {
			zl.Fatal("Failed to initialize Pub/Sub subscriber", zap.Error(err))
		}
		defer subscriber.Close()

		subscriberDone = make(chan error, 1)
		go func() {
			subscriberDone <- subscriber.Start(subCtx)
		}()
	} else {
		zl.Warn("PUBSUB_TOPIC not configured, Pub/Sub ingress disabled")
	}

	handler := api.NewHandler(notifier, cfg, registry, zl)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Router(),
	}
	serverErr := make(chan error, 1)
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		zl.Info("Shutdown signal received")
	case err := <-serverErr:
		zl.Error("HTTP server failed", zap.Error(err))
	case err := <-subscriberDone:
		if err != nil {
			zl.Error("Pub/Sub subscriber failed", zap.Error(err))
		}
		subscriberDone = nil
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP server shutdown failed", zap.Error(err))
	}

	cancelSub()
	if subscriberDone != nil {
		select {
		case err := <-subscriberDone:
			if err != nil {
				zl.Error("Pub/Sub subscriber failed", zap.Error(err))
			}
		case <-shutdownCtx.Done():
			zl.Warn("Pub/Sub subscriber did not drain before the shutdown timeout")
		}
	}
	zl.Info("Notifier stopped")
}
