// Command admin is the bootstrap tool for operators: promote a user to admin
// by email, or list all users. A user must have logged in (or been created)
// before promotion.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"schoolattend/internal/config"
	"schoolattend/internal/store"
	"schoolattend/internal/user"
)

func main() {
	list := flag.Bool("list", false, "list all users instead of promoting")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  admin <email>   promote user to admin\n  admin -list     list all users\n")
	}
	flag.Parse()

	if !*list && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db connect failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	repo := user.NewPGRepository(db.Client)

	if *list {
		if err := listUsers(ctx, repo); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := promote(ctx, repo, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func promote(ctx context.Context, repo *user.PGRepository, email string) error {
	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("lookup %s: %w (the user must log in at least once first)", email, err)
	}
	if err := repo.UpdateRole(ctx, u.ID, user.RoleAdmin); err != nil {
		return err
	}
	fmt.Printf("made %s (%s) an admin\n", u.Name, u.Email)
	return nil
}

func listUsers(ctx context.Context, repo *user.PGRepository) error {
	users, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("no users found")
		return nil
	}
	for _, u := range users {
		fmt.Printf("%-8s %s <%s>\n", u.Role, u.Name, u.Email)
	}
	return nil
}
