package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/guttosm/bond-optimizer/config"
	"github.com/guttosm/bond-optimizer/internal/middleware"
)

// tokenCmd holds the flags for the 'token' subcommand.
type tokenCmd struct {
	subject string
	ttl     time.Duration
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "issue a bearer token for the HTTP API" }
func (*tokenCmd) Usage() string {
	return `bondopt token [-sub cli] [-ttl 1h]

  Signs a token with JWT_SECRET_KEY. The TTL defaults to JWT_TOKEN_TTL.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subject, "sub", "cli", "Token subject")
	f.DurationVar(&c.ttl, "ttl", 0, "Token lifetime, defaults to JWT_TOKEN_TTL")
}

func (c *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	auth := cfg.Auth
	if auth.JWTSecretKey == "" {
		fmt.Fprintln(stderr, "Error: JWT_SECRET_KEY is not set")
		return subcommands.ExitFailure
	}

	ttl := c.ttl
	if ttl <= 0 {
		ttl = auth.TokenTTL
	}

	token, err := middleware.IssueToken([]byte(auth.JWTSecretKey), c.subject, ttl)
	if err != nil {
		fmt.Fprintf(stderr, "Error issuing token: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, token)
	return subcommands.ExitSuccess
}
