// Command mavrouterd runs the MAVLink router and firewall: it loads a
// chain configuration, attaches a Connection to every configured
// interface, and fans accepted frames out across the connection fabric.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avionics-go/mavrouter/internal/config"
	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/obs"
)

var (
	version = "0.1.0"

	configFile  = flag.String("config", "mavrouter.yaml", "configuration file path")
	httpAddr    = flag.String("http-addr", ":8090", "REST/WebSocket control-plane listen address")
	metricsAddr = flag.String("metrics-addr", ":9090", "Prometheus metrics listen address")
	logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
	jwtSecret   = flag.String("jwt-secret", "", "shared secret required on mutating control-plane routes; empty disables auth")
	waitDiag    = flag.Duration("wait", 0, "diagnostic mode: block until any connection receives a packet, or this long, then exit")
)

func main() {
	flag.Parse()
	obs.SetLevel(*logLevel)
	printBanner()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	filter, ifaces, err := config.Load(*configFile, dialect.Common)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	router, err := NewRouter(ctx, filter)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}
	for _, iface := range ifaces {
		if err := router.AddInterface(iface); err != nil {
			log.Fatalf("failed to attach interface %q: %v", iface.Name, err)
		}
	}

	router.Start()

	if *waitDiag > 0 {
		runWaitDiagnostic(router, *waitDiag)
		cancel()
		router.Shutdown()
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := serveHTTP(ctx, router, *httpAddr, *jwtSecret); err != nil {
			obs.Log.WithError(err).Warn("control-plane HTTP server stopped")
		}
	}()
	go func() {
		defer wg.Done()
		if err := serveMetrics(ctx, *metricsAddr); err != nil {
			obs.Log.WithError(err).Warn("metrics server stopped")
		}
	}()

	obs.Log.WithField("version", version).Info("mavrouterd operational")

	<-sigChan
	obs.Log.Info("shutdown signal received")
	cancel()
	router.Shutdown()
	wg.Wait()
	obs.Log.Info("mavrouterd shutdown complete")
}

func printBanner() {
	obs.Log.WithField("version", version).Info("starting mavrouterd")
}
