/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the mineral royalty calculation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize SQLite store
  3. Load rate configuration (defaults, optionally merged with JSON)
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080, env PORT)
  -db      SQLite database path (default: royalty.db, env DATABASE_PATH)
           Use ":memory:" for an in-memory database
  -rates   Optional JSON rate-config file merged over the statutory
           defaults (env RATES_PATH)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/royalty.db"

  # Run with in-memory database and custom rates
  ./server -db=":memory:" -rates="./rates.json"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
  - factory/rates.go: Rate config loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/swazimin/royalty-engine/api"
	"github.com/swazimin/royalty-engine/factory"
	"github.com/swazimin/royalty-engine/royalty"
	"github.com/swazimin/royalty-engine/store/sqlite"
)

func main() {
	// .env is optional; flags and real env vars win
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envStr("DATABASE_PATH", "royalty.db"), "SQLite database path")
	ratesPath := flag.String("rates", envStr("RATES_PATH", ""), "JSON rate config merged over defaults")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Rate configuration
	cfg := royalty.DefaultRateConfig()
	if *ratesPath != "" {
		data, err := os.ReadFile(*ratesPath)
		if err != nil {
			log.Fatalf("Failed to read rate config: %v", err)
		}
		cfg, err = factory.ParseRates(string(data))
		if err != nil {
			log.Fatalf("Failed to parse rate config: %v", err)
		}
		log.Printf("Rate config merged from %s", *ratesPath)
	}

	// Initialize handler and router
	handler := api.NewHandler(store, royalty.NewEngine(cfg))
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Royalty engine starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
