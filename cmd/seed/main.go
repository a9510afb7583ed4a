package main

import (
	"context"
	"flag"
	"log"
	"os"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/db"
	categoryrepo "restaurant-ordering/internal/repository/category"
	customerrepo "restaurant-ordering/internal/repository/customer"
	menurepo "restaurant-ordering/internal/repository/menu"
	"restaurant-ordering/internal/seed"
	customersvc "restaurant-ordering/internal/service/customer"
)

func main() {
	config.LoadDotEnv()
	var opts seed.Options
	flag.StringVar(&opts.AdminEmail, "admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "Email of the admin account to create")
	flag.StringVar(&opts.AdminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "Password of the admin account")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	seeder := seed.New(
		categoryrepo.NewPostgres(pool, logger),
		menurepo.NewPostgres(pool, logger),
		customersvc.New(customerrepo.NewPostgres(pool, logger), cfg.JWTSecret, cfg.AccessTokenTTL),
		logger,
	)
	res, err := seeder.Apply(ctx, opts)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied: categories=%d created=%d skipped=%d admin=%v", res.Categories, res.Created, res.Skipped, res.Admin)
}
