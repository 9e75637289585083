package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "unique email")
	password := flag.String("password", "", "password, 8 chars minimum")
	flag.Parse()

	if *name == "" || *email == "" || len(*password) < 8 {
		log.Fatal("usage: createuser -name NAME -email EMAIL -password PASSWORD (8+ chars)")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	repo := repository.NewUserRepository(pool)
	user := &domain.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
	}

	if err := repo.Create(context.Background(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Fatalf("email %s already registered", *email)
		}
		log.Fatalf("create user failed: %v", err)
	}

	log.Printf("user created id=%d email=%s\n", user.ID, user.Email)
}
