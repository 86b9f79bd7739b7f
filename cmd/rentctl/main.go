package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rentrack/rentrack/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd(cli.OpenFromEnv)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
