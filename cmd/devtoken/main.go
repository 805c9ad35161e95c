// Command devtoken mints a bearer token for local testing.
//
//	go run ./cmd/devtoken -role registrar -subject land-office
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"regnet/internal/identity"
	"regnet/internal/platform/config"
)

func main() {
	cfg := config.FromEnv()

	role := flag.String("role", "user", "registrar or user")
	subject := flag.String("subject", "dev", "token subject")
	msp := flag.String("msp", "", "explicit MSP id, overrides -role")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	mspID := *msp
	if mspID == "" {
		switch *role {
		case "registrar":
			mspID = cfg.Auth.RegistrarMSP
		case "user":
			mspID = cfg.Auth.UserMSP
		default:
			fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
			os.Exit(2)
		}
	}

	token, err := identity.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer).GenerateToken(*subject, mspID, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
