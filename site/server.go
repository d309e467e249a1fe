// Package main runs the static file server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/f4ah6o/httpd10/internal/accesslog"
	"github.com/f4ah6o/httpd10/internal/config"
	"github.com/f4ah6o/httpd10/internal/docroot"
	"github.com/f4ah6o/httpd10/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a .toml or .yaml config file")
	addr := flag.String("addr", "", "Address to listen on (overrides config)")
	root := flag.String("root", "", "Document root (overrides config, defaults to the working directory)")
	logFile := flag.String("log", "", "Access log file (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatalf("Failed to load config: %v", err)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	absRoot, err := cfg.ResolveRoot()
	if err != nil {
		fatalf("Failed to resolve document root: %v", err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		fatalf("Document root is not a directory: %s", absRoot)
	}
	readTimeout, err := cfg.ReadTimeoutDuration()
	if err != nil {
		fatalf("Invalid config: %v", err)
	}

	accessLog, err := accesslog.Open(cfg.LogFile)
	if err != nil {
		fatalf("Failed to create log: %v", err)
	}
	defer accessLog.Close()

	resolver := docroot.NewResolver(absRoot, nil)
	resolver.IndexFiles = cfg.IndexFiles
	resolver.Normalize = cfg.NormalizePaths

	srv := server.New(&server.Handler{
		Resolver:    resolver,
		AccessLog:   accessLog,
		ServerTag:   cfg.ServerTag,
		ReadTimeout: readTimeout,
	})
	srv.MaxConns = cfg.MaxConns

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		fatalf("Failed to bind %s: %v", cfg.Addr, err)
	}

	fmt.Printf("%s Serving %s at %s\n", color.GreenString("httpd10"), absRoot, color.CyanString(ln.Addr().String()))
	fmt.Printf("Access log: %s\n", cfg.LogFile)
	if cfg.MaxConns == 0 {
		color.Yellow("Connections are unbounded; set max_conns to limit them")
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx, ln); err != nil {
		log.Printf("Server error: %v", err)
	}
}

func fatalf(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
