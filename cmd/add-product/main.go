package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/config"
	"github.com/jafarshop/invman/internal/repository/xlsxstore"
	"github.com/jafarshop/invman/internal/service"
)

func main() {
	if len(os.Args) < 7 {
		fmt.Println("Usage: go run cmd/add-product/main.go <name> <category> <model> <price> <fee> <color>=<stock> [<color>=<stock>...]")
		fmt.Println("Example: go run cmd/add-product/main.go \"Slim Case\" \"Cases\" \"iPhone 15\" 19.99 4.50 Black=25 Clear=10")
		os.Exit(1)
	}

	name := os.Args[1]
	category := os.Args[2]
	modelName := os.Args[3]

	price, err := decimal.NewFromString(os.Args[4])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid price %q: %v\n", os.Args[4], err)
		os.Exit(1)
	}
	fee, err := decimal.NewFromString(os.Args[5])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid fee %q: %v\n", os.Args[5], err)
		os.Exit(1)
	}

	colors := map[string]int{}
	for _, arg := range os.Args[6:] {
		color, stockStr, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "Invalid color/stock pair %q, want <color>=<stock>\n", arg)
			os.Exit(1)
		}
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid stock count %q: %v\n", stockStr, err)
			os.Exit(1)
		}
		colors[color] = stock
	}

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
	id, err := inventory.AddProduct(context.Background(), service.AddProductInput{
		Name:     name,
		Category: category,
		Models: map[string]service.ModelInput{
			modelName: {Price: price, Fee: fee, Colors: colors},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to add product: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Product added!\n\n")
	fmt.Printf("Product ID: %s\n", id.String())
	fmt.Printf("Name: %s\n", name)
	fmt.Printf("Category: %s\n", category)
	fmt.Printf("Model: %s (price %s, fee %s)\n", modelName, price.String(), fee.String())
	for color, stock := range colors {
		fmt.Printf("  %s: %d in stock\n", color, stock)
	}
}
