package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-proxy-d/internal/catalog"
	"asset-proxy-d/internal/objstore"

	"golang.org/x/time/rate"
)

// All methods on Context will be registered as HTTP routes according to the
// pattern they return
type Context struct {
	prefix  string
	catalog catalog.Catalog
	store   objstore.Client
}

func (c Context) Health() (string, func(w http.ResponseWriter, r *http.Request)) {
	return "/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

func main() {
	addr := flag.String("addr", ":4503", "The address to listen on.")
	dbPath := flag.String("db", "catalog.db", "Path to the asset catalog database.")
	storeURL := flag.String("store", "", "Public base URL of the object store.")
	prefix := flag.String("prefix", "a", "Leading path segment for asset routes.")
	rps := flag.Float64("rps", 0, "Inbound requests per second, 0 disables limiting.")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driver, qry, err := catalog.Open(ctx, *dbPath)
	if err != nil {
		slog.Error("open catalog", "error", err)
		os.Exit(1)
	}
	defer driver.Close()

	var store objstore.Client
	if *storeURL != "" {
		store = objstore.HTTP{BaseURL: *storeURL}
	}

	mux := http.NewServeMux()
	router := Context{
		prefix:  *prefix,
		catalog: qry,
		store:   store,
	}
	mux.HandleFunc(router.Asset())
	mux.HandleFunc(router.Health())

	var limiter *rate.Limiter
	if *rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(*rps), int(*rps)+1)
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: withLimit(limiter, mux),
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.Error("listen", "error", err)
		}
	}()

	slog.Info("serving", "addr", *addr, "prefix", *prefix)
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
}
