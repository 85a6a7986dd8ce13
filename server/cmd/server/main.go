package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/pedsync/assets"
	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/server/core"
	"github.com/automoto/pedsync/shared/crash"
	"github.com/automoto/pedsync/shared/netconfig"
	"github.com/automoto/pedsync/shared/protocol"
)

func main() {
	port := flag.Uint("port", cfg.Sim.Port, "Server port")
	tickRate := flag.Int("tickrate", cfg.Sim.TickRate, "Feed tick rate (updates per second)")
	name := flag.String("name", cfg.Sim.Name, "Feed display name")
	level := flag.String("level", cfg.Sim.Level, "Level name under levels/")
	assetsDir := flag.String("assets", "", "Assets directory (empty = embedded)")
	sentryDSN := flag.String("sentry-dsn", os.Getenv("SENTRY_DSN"), "Sentry DSN for crash reports")
	flag.Parse()

	cfg.Sim.Port = *port
	cfg.Sim.TickRate = *tickRate
	cfg.Sim.Name = *name
	cfg.Sim.Level = *level

	if err := crash.Init(*sentryDSN, netconfig.ProtocolVersion); err != nil {
		log.Printf("Warning: crash reporting disabled: %v", err)
	}
	defer crash.Flush()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	fsys, err := assets.Open(*assetsDir)
	if err != nil {
		log.Fatalf("Failed to open assets: %v", err)
	}
	data, err := core.LoadLevel(fsys, cfg.Sim.Level)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	server, err := core.NewServer(cfg.Sim, data)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down feed...")
		server.Stop()
		crash.Flush()
		os.Exit(0)
	}()

	log.Printf("Starting feed %q on port %d (level: %s, tick rate: %d/s, protocol: %s)",
		cfg.Sim.Name, cfg.Sim.Port, cfg.Sim.Level, cfg.Sim.TickRate, netconfig.ProtocolVersion)
	if err := server.Start(cfg.Sim.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
