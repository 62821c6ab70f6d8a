package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"masterblog/app/storage"
	"masterblog/config"
	"masterblog/routes"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	switch strings.ToLower(os.Args[1]) {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("masterblog version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: masterblog <command>
Commands:
  help      Display this help message.
  version   Show version information.
  serve     Run the blog API server (configured via BLOG_* env vars).
`
	fmt.Println(helpText)
}

// serve builds the store and router from the environment and runs the HTTP
// server until it fails.
func serve() {
	log := logrus.New()
	cfg := config.Load()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	router, err := routes.SetupRoutes(cfg, store, log)
	if err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("Starting blog API on %s (store: %s)", cfg.Addr, cfg.Store)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Store {
	case "badger":
		st, err := storage.NewBadgerStore(filepath.Join(cfg.DataDir, "badger"))
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "file":
		st, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
