// Command admintoken mints a bearer token for the admin API.
//
//	admintoken -actor ops@example.com [-ttl 2h]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"client-wallet-service/config"
	"client-wallet-service/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	actor := flag.String("actor", "", "acting user recorded on admin writes (required)")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to jwt.expiry")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CWS_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "jwt.secret is not configured (set CWS_JWT_SECRET)")
		os.Exit(1)
	}

	expiry := cfg.JWT.Expiry
	if *ttl > 0 {
		expiry = *ttl
	}

	token, expiresAt, err := service.NewJWTTokenService(cfg.JWT.Secret, expiry, cfg.JWT.Issuer).Generate(*actor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
}
