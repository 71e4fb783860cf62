package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopping-assistant-be/internal/bootstrap"
	"shopping-assistant-be/internal/config"
	"shopping-assistant-be/internal/server"
	"shopping-assistant-be/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracer (no-op unless TRACING_ENABLED)
	shutdownTracer := tracer.InitTracer(ctx, cfg)
	defer shutdownTracer(context.Background())

	// 3. Optional infrastructure
	gormDB, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Panicf("%v", err)
	}
	rdb := bootstrap.OpenRedis(ctx, cfg)

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, gormDB, rdb)
	if err != nil {
		log.Panicf("Unable to build container: %v", err)
	}
	defer container.Close()

	// 5. Warm up memory from recent conversations
	if loaded, err := container.MemoryService.WarmUp(ctx, cfg.Assistant.WarmupWindow); err != nil {
		log.Printf("[WARN] Memory warm-up failed: %v", err)
	} else if loaded > 0 {
		log.Printf("[INFO] Memory warm-up restored %d turns", loaded)
	}

	// 6. Background services and server
	srv := server.New(cfg, container)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Println("Background: Starting Analytics consumer...")
		return container.AnalyticsService.Consume(gctx)
	})

	g.Go(func() error {
		container.WebSocketHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return srv.Run()
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("✅ Server stopped")
}
