// Command server runs the quantum synthesis HTTP service: dispatch,
// batch dispatch, and saved-program execution over the statevector
// engine facade.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/synthesis/internal/app"
	"github.com/kegliz/synthesis/internal/config"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a synthesis config file (optional)")
	port := flag.Int("port", 0, "HTTP listen port (overrides config)")
	localOnly := flag.Bool("local-only", false, "bind to 127.0.0.1 instead of all interfaces")
	flag.Parse()

	var configPaths []string
	if *configPath != "" {
		configPaths = []string{*configPath}
	}

	cfg, err := config.New(config.Options{ConfigPaths: configPaths})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	listenPort := *port
	if listenPort == 0 {
		listenPort = cfg.GetInt("port")
	}
	local := *localOnly || cfg.GetBool("local_only")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(listenPort, local)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	case <-sigCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("shutdown: %v", err)
		}
	}
}
