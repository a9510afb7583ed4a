package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/db"
	"restaurant-ordering/internal/events"
	"restaurant-ordering/internal/httpserver"
	cartrepo "restaurant-ordering/internal/repository/cart"
	categoryrepo "restaurant-ordering/internal/repository/category"
	customerrepo "restaurant-ordering/internal/repository/customer"
	menurepo "restaurant-ordering/internal/repository/menu"
	cartsvc "restaurant-ordering/internal/service/cart"
	categorysvc "restaurant-ordering/internal/service/category"
	customersvc "restaurant-ordering/internal/service/customer"
	menusvc "restaurant-ordering/internal/service/menu"
	"restaurant-ordering/internal/storage"
)

func main() {
	config.LoadDotEnv()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()
	if err := db.Ping(ctx, dbpool); err != nil {
		logger.Printf("db not reachable yet: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaCartTopic, logger)
		if err != nil {
			logger.Fatalf("init kafka publisher: %v", err)
		}
		publisher = kafka
		logger.Printf("publishing cart events to %s", cfg.KafkaCartTopic)
	}
	defer publisher.Close()

	var images storage.Uploader = storage.Disabled{}
	if cfg.Storage.Enabled() {
		uploader, err := storage.NewS3Uploader(ctx, cfg.Storage, logger)
		if err != nil {
			logger.Fatalf("init image storage: %v", err)
		}
		images = uploader
	}

	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	categoryService := categorysvc.New(categoryRepo)
	menuService := menusvc.New(menurepo.NewPostgres(dbpool, logger), categoryRepo, images, logger)
	cartService := cartsvc.New(cartrepo.NewPostgres(dbpool, logger), menuService, publisher, cfg.Currency, logger)
	customerService := customersvc.New(customerrepo.NewPostgres(dbpool, logger), cfg.JWTSecret, cfg.AccessTokenTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc:    customerService,
		CategorySvc:    categoryService,
		MenuSvc:        menuService,
		CartSvc:        cartService,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
