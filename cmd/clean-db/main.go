package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rentrack/rentrack/internal/config"
	"github.com/rentrack/rentrack/internal/store"
)

func main() {
	force := flag.Bool("force", false, "skip the confirmation check")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !*force {
		fmt.Fprintf(os.Stderr, "Refusing to clear the %s store without -force\n", cfg.Store.Driver)
		os.Exit(2)
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer st.Close()

	fmt.Println("Cleaning database...")

	removed, err := st.Reset(ctx)
	if err != nil {
		log.Fatalf("Failed to clean: %v", err)
	}

	fmt.Printf("\n✓✓✓ Removed %d rows. Tenants and payments are empty.\n", removed)
}
