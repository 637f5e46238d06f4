package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tax-agent/config"
	httpLayer "tax-agent/http"
	"tax-agent/repository"
	"tax-agent/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	} else {
		cache = repository.NewMockCache()
	}

	// Cache sits outermost so a hit skips the retry loop entirely.
	source := repository.NewHTTPBracketProvider(cfg.TaxAPIURL, cfg.TaxAPITimeout)
	retrying := repository.NewRetryingBracketProvider(source, cfg.TaxAPIMaxRetries)
	provider := repository.NewCachedBracketProvider(retrying, cache)

	taxService := service.NewTaxService(provider)
	taxHandler := httpLayer.NewTaxHandler(taxService, cfg.SupportedTaxYears)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/calculate-tax",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(taxHandler.CalculateTax),
		),
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 tax API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
