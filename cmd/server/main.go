package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/movie-chat-booking/internal/config"
	"github.com/iliyamo/movie-chat-booking/internal/queue"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
	"github.com/iliyamo/movie-chat-booking/internal/router"
	"github.com/iliyamo/movie-chat-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repository.NewStore()
	seed := cfg.SeedRandom
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	repository.Seed(store, repository.SeedOptions{
		UnavailableRatio: cfg.SeedRatio,
		Rand:             rand.New(rand.NewSource(seed)),
	})

	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Printf("redis unavailable, cache and rate limit disabled: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	qcfg := config.LoadQueueConfig()
	if qcfg.Enabled && qcfg.Consume {
		go func() {
			if err := queue.StartBookingConsumer(ctx, qcfg); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	e := router.New(router.Deps{
		Cfg:       cfg,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Store:     store,
		Bookings:  service.NewBookingService(store, service.NewPublisher(qcfg)),
		Redis:     rdb,
	})

	go func() {
		log.Printf("listening on %s (env=%s, queue=%t, redis=%t)", cfg.Addr(), cfg.Env, qcfg.Enabled, rdb != nil)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
