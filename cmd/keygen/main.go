package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/seatplan-api/pkg/auth"
	"github.com/arnavshah/seatplan-api/pkg/config"
)

func main() {
	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <client-name>")
		os.Exit(1)
	}

	if cfg.APIMasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET is not set")
		os.Exit(1)
	}
	auth.Init(cfg)

	name := os.Args[1]
	fmt.Printf("Generated Key for %s:\n%s\n", name, auth.GenerateHMACKey(name))
}
