package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-food-orders.git/internal/auth"
	"github.com/ariefcatur/go-food-orders.git/internal/cart"
	"github.com/ariefcatur/go-food-orders.git/internal/checkout"
	"github.com/ariefcatur/go-food-orders.git/internal/config"
	"github.com/ariefcatur/go-food-orders.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-food-orders.git/internal/kafka"
	"github.com/ariefcatur/go-food-orders.git/internal/orders"
	"github.com/ariefcatur/go-food-orders.git/internal/postgres"
	"github.com/ariefcatur/go-food-orders.git/internal/redisx"
	"github.com/ariefcatur/go-food-orders.git/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producers: satu per topic
	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	pPlaced.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStatusChanged, 1024)
	pStatus.Start(ctx)

	// Stores & services
	repo := &orders.Repo{DB: db}
	carts := &cart.Store{R: rdb}
	stage := &checkout.RedisStage{R: rdb}
	sessions := &auth.Sessions{R: rdb}
	statusCache := &tracker.Cache{R: rdb}
	track := &tracker.Tracker{Repo: repo}
	svc := checkout.NewService(carts, stage, sessions, repo, pPlaced, statusCache, cfg.ServiceName)

	// Router & handlers
	router := httpx.NewRouter(cfg.AllowedOrigins)
	(&httpx.CartHandler{Store: carts}).Register(router)
	(&httpx.CheckoutHandler{Svc: svc, Sessions: sessions}).Register(router)
	(&httpx.OrdersHandler{
		Repo:          repo,
		Tracker:       track,
		Cache:         statusCache,
		Stage:         stage,
		Producer:      pStatus,
		Service:       cfg.ServiceName,
		PublicBaseURL: cfg.PublicBaseURL,
	}).Register(router)
	(&httpx.RestaurantsHandler{Repo: repo}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pPlaced.Close() // tutup inbox -> flush & close writer
	pStatus.Close()
	cancel() // stop producer loops
	pPlaced.WaitClosed()
	pStatus.WaitClosed()
}
