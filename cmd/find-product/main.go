package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/config"
	"github.com/jafarshop/invman/internal/repository/xlsxstore"
	"github.com/jafarshop/invman/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <name-or-model-substring>")
		fmt.Println("Example: go run cmd/find-product/main.go \"iPhone 15\"")
		os.Exit(1)
	}

	query := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Open the workbook stores
	repos, err := xlsxstore.NewRepositories(cfg.Store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open data stores: %v\n", err)
		os.Exit(1)
	}

	inventory := service.NewInventoryService(repos, logger)

	fmt.Printf("🔍 Searching for: %s\n\n", query)

	byName, err := inventory.ListProducts(context.Background(), service.CatalogFilter{Name: query})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to search catalog: %v\n", err)
		os.Exit(1)
	}
	byModel, err := inventory.ListProducts(context.Background(), service.CatalogFilter{Model: query})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to search catalog: %v\n", err)
		os.Exit(1)
	}

	seen := map[string]bool{}
	found := 0
	for _, product := range append(byName, byModel...) {
		if seen[product.ID.String()] {
			continue
		}
		seen[product.ID.String()] = true
		found++

		fmt.Printf("Product: %s (%s)\n", product.Name, product.Category)
		fmt.Printf("  ID: %s\n", product.ID.String())
		for _, modelName := range product.ModelNames() {
			model := product.Models[modelName]
			fmt.Printf("  Model %s: price %s, fee %s\n", modelName, model.Price.String(), model.Fee.String())
			for _, color := range model.ColorNames() {
				fmt.Printf("    %s: %d in stock, %d sold\n",
					color, model.Colors[color], model.UnitsSoldByColor[color])
			}
		}
		fmt.Println()
	}

	if found == 0 {
		fmt.Printf("❌ No product matching %q in the catalog.\n", query)
		os.Exit(1)
	}
}
