package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/config"
	"github.com/jafarshop/retailops/internal/repository/postgres"
	"github.com/jafarshop/retailops/internal/service"
	"github.com/jafarshop/retailops/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/price-check/main.go <barcode>")
		fmt.Println("Example: go run cmd/price-check/main.go 8690000000001")
		os.Exit(1)
	}

	barcode := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	opts, err := service.AnalyticsOptions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid analytics settings: %v\n", err)
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(postgres.NewRepositories(db, logger), opts, logger)

	fmt.Printf("🔍 Looking up barcode: %s\n\n", barcode)

	entry, err := catalogService.GetByBarcode(context.Background(), barcode)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			fmt.Printf("❌ Barcode '%s' is not in the catalog.\n", barcode)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Failed to look up barcode: %v\n", err)
		os.Exit(1)
	}

	item := entry.Item
	fmt.Printf("Name: %s\n", item.Name)
	if item.Category != nil {
		fmt.Printf("Category: %s\n", *item.Category)
	}
	fmt.Printf("List Price: %s\n", entry.Price.OriginalPrice.StringFixed(2))
	fmt.Printf("Final Price: %s\n", entry.Price.FinalPrice.StringFixed(2))
	if rule := entry.Price.AppliedRule; rule != nil {
		fmt.Printf("Discount: %s %s (-%s per unit)\n", rule.Type, rule.Value.String(), entry.Price.DiscountAppliedPerUnit.StringFixed(2))
	}
	fmt.Printf("Stock: %d (%s)\n", item.Stock, entry.StockStatus)
}
