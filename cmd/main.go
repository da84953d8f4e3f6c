package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"deskline/domain/event"
	"deskline/internal"
	"deskline/runtime"
	"deskline/runtime/workers"
	"deskline/services"
	"deskline/transport/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so that every defer executes before the
// process exits and the entry point stays testable.
func run() error {
	// 1. Configuration & Logger
	// A .env file is a local-development convenience; absent in prod.
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Core: registry, routing engine, chat service
	registry := runtime.NewRegistry()
	events := make(chan event.Event, config.TelemetryBufferSize)
	hub := ws.NewHub(log)
	engine := runtime.NewEngine(log, registry, hub, events, config.CustomerTimeout)
	defer engine.Close()

	service := services.NewChatService(engine)

	// 3. Supervised workers: websocket edge + telemetry
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := ws.NewServer(log, service, hub, addr, config.SendBufferSize)
	telemetry := workers.NewTelemetryWorker(log, events, config.TelemetryInterval)

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(server, telemetry)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Run until shutdown; Run blocks while the supervisor drains.
	log.Info("deskline starting", "addr", addr,
		"customer_timeout", config.CustomerTimeout.String())
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
