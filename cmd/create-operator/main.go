package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/retailops/internal/config"
	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/create-operator/main.go <operator-name> <api-key>")
		fmt.Println("Example: go run cmd/create-operator/main.go \"Front Till\" \"till-api-key-12345\"")
		os.Exit(1)
	}

	operatorName := os.Args[1]
	apiKey := os.Args[2]

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

	ctx := context.Background()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare schema: %v\n", err)
		os.Exit(1)
	}

	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	operator := &domain.Operator{
		Name:       operatorName,
		APIKeyHash: string(apiKeyHash),
		IsActive:   true,
	}

	if err := repos.Operator.Create(ctx, operator); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create operator: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Operator created successfully!\n\n")
	fmt.Printf("Operator ID: %s\n", operator.ID.String())
	fmt.Printf("Operator Name: %s\n", operator.Name)
	fmt.Printf("\n⚠️  The API key is stored hashed and cannot be shown again.\n")
	fmt.Printf("\nUse it in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer <api-key>\n")
}
