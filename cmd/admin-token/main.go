// Command admin-token prints a signed admin token for the write endpoints.
package main

import (
	"flag"
	"fmt"
	"os"

	"starforge/internal/auth"
	"starforge/internal/shared/config"
)

func main() {
	subject := flag.String("subject", "admin", "subject recorded in the token")
	flag.Parse()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig.Auth

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create token issuer: %v\n", err)
		os.Exit(1)
	}

	token, err := tokens.GenerateAdminJWT(*subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
