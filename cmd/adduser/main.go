// Command adduser inserts a user row and prints its generated API key.
// Profile path and id can be set directly so the account is usable for
// score submission without a separate configuration step.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/stepstats/internal/adapters/repository"
)

const openTimeout = 15 * time.Second

func main() {
	var (
		dsn         = flag.String("db", os.Getenv("STEPSTATS_DATABASE_URL"), "Postgres DSN (defaults to STEPSTATS_DATABASE_URL)")
		username    = flag.String("user", "", "username for the new account")
		password    = flag.String("password", "", "password for the new account")
		profilePath = flag.String("profile-path", "", "game install path (optional)")
		profileID   = flag.String("profile-id", "", "profile identifier scores attach to (optional)")
	)
	flag.Parse()

	if *dsn == "" || *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adduser -db <dsn> -user <name> -password <secret> [-profile-path p] [-profile-id id]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	store, err := repository.OpenPostgres(ctx, *dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer store.Close()

	apiKey, err := store.CreateUser(ctx, *username, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	if *profilePath != "" || *profileID != "" {
		if err := store.SetProfile(ctx, *username, *profilePath, *profileID); err != nil {
			fmt.Fprintln(os.Stderr, "configure profile:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("user %q created\napi_key: %s\n", *username, apiKey)
}
