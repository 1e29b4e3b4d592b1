// Command promote sets a user's role by email address. It is used to
// bootstrap the first admin user.
//
// Usage:
//
//	promote --email=user@example.com [--role=admin]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/korima-app/korima-backend/internal/adapter/postgres"
	userrepo "github.com/korima-app/korima-backend/internal/adapter/postgres/user"
	"github.com/korima-app/korima-backend/internal/config"
	"github.com/korima-app/korima-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of user to promote")
	role := flag.String("role", string(domain.UserRoleAdmin), "role to grant (user, moderator, admin)")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--role=admin]")
		os.Exit(1)
	}
	target := domain.UserRole(*role)
	if !target.IsValid() {
		fmt.Fprintf(os.Stderr, "invalid role %q\n", *role)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	u, err := userrepo.New(pool).SetRoleByEmail(ctx, *email, target)
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No user found with email %q.\n", *email)
		pool.Close()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("update role: %v", err)
	}

	fmt.Printf("User %q is now %s.\n", u.Email, u.Role)
}
