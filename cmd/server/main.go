// Command server runs the storefront HTTP + gRPC server directly, without
// the operational CLI. Container images use this as their entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/storefront/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}
