package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/ambiyansyah-risyal/hostapi/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}
