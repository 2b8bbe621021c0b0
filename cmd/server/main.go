package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"

    "github.com/spf13/cobra"
)

var version = "dev" // Set at build time via -ldflags

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    cobra.CheckErr(newCmd().ExecuteContext(ctx))
}
