package main

import (
	"context"
	"fmt"
	"log"

	"github.com/rentrack/rentrack/internal/config"
	"github.com/rentrack/rentrack/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer st.Close()

	fmt.Printf("✓ Connected to %s store\n", st.Driver())

	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	fmt.Println("\n✓✓✓ All migrations completed successfully!")
}
