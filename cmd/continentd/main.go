package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"continents/continent"
	"continents/server"
	"continents/store"
)

const shutdownTimeout = 5 * time.Second

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt64(name string, def int64) int64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("Invalid %v %q: %v", name, v, err)
	}
	return n
}

func envBool(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("Invalid %v %q: %v", name, v, err)
	}
	return b
}

func main() {
	cfg := server.DefaultConfig()

	addr := flag.String("addr", envOr("CONTINENTD_ADDR", ":8080"), "address to listen on")
	flag.StringVar(&cfg.Prefix, "prefix", envOr("CONTINENTD_PREFIX", cfg.Prefix), "path prefix of the continent resource")
	flag.Int64Var(&cfg.MaxBodyBytes, "max-body", envInt64("CONTINENTD_MAX_BODY", 0), "largest accepted request body in bytes, 0 for no limit")
	notFound404 := flag.Bool("not-found-404", envBool("CONTINENTD_NOT_FOUND_404"), "answer unknown continents with 404 instead of 500")
	malformed400 := flag.Bool("malformed-400", envBool("CONTINENTD_MALFORMED_400"), "answer malformed create-or-replace bodies with 400 instead of 500")
	flag.Parse()

	if *notFound404 {
		cfg.NotFoundStatus = http.StatusNotFound
	}
	if *malformed400 {
		cfg.MalformedStatus = http.StatusBadRequest
	}

	st := store.New(continent.Seed())
	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.New(st, cfg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Serving %d continents under %v on %v", st.Len(), cfg.Prefix, *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	<-drained
	log.Println("Server stopped")
}
