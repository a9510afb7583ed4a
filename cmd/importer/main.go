package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/db"
	"restaurant-ordering/internal/importer"
	categoryrepo "restaurant-ordering/internal/repository/category"
	menurepo "restaurant-ordering/internal/repository/menu"
	menusvc "restaurant-ordering/internal/service/menu"
	"restaurant-ordering/internal/storage"
)

func main() {
	config.LoadDotEnv()
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to menu CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	categories := categoryrepo.NewPostgres(pool, logger)
	menuService := menusvc.New(menurepo.NewPostgres(pool, logger), categories, storage.Disabled{}, logger)
	imp := importer.NewCSVImporter(f, menuService, categories)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d items: %v", count, err)
	}

	fmt.Printf("Imported %d menu items in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
