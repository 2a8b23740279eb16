package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pressid/mission-orders/internal/buildinfo"
	"github.com/pressid/mission-orders/internal/config"
	"github.com/pressid/mission-orders/internal/core/event"
	"github.com/pressid/mission-orders/internal/core/services"
	"github.com/pressid/mission-orders/internal/log"
	"github.com/pressid/mission-orders/pkg/pubsub"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx, cancel := context.WithCancel(log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout))
	defer cancel()
	log.Info(ctx, "starting mission orders notifications", buildinfo.LogAttrs()...)

	if err := cfg.SanitizeNotifications(); err != nil {
		log.Error(ctx, "there are errors in the configuration that prevent the consumer to start", "err", err)
		return
	}

	ps, err := pubsub.NewPubSub(ctx, *cfg)
	if err != nil {
		log.Error(ctx, "cannot connect to pubsub", "err", err, "provider", cfg.Cache.Provider)
		return
	}
	defer func() { _ = ps.Close() }()

	notificationService := services.NewNotification()
	if err := ps.Subscribe(ctx, event.AssignmentIssuedEvent, notificationService.AssignmentIssued); err != nil {
		log.Error(ctx, "subscribing to topic", "err", err, "topic", event.AssignmentIssuedEvent)
		return
	}
	if err := ps.Subscribe(ctx, event.AssignmentVerifiedEvent, notificationService.AssignmentVerified); err != nil {
		log.Error(ctx, "subscribing to topic", "err", err, "topic", event.AssignmentVerifiedEvent)
		return
	}
	log.Info(ctx, "listening to mission order events")

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	<-gracefulShutdown
	log.Info(ctx, "Shutting down")
}
