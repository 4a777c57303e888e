package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"decora/internal/config"
	"decora/internal/db"
	"decora/internal/model"
	"decora/internal/repository"
)

const bcryptCost = 10

// One-shot maintenance script: creates the dashboard admin account from
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_ROLE, or rotates the password of an
// existing account when -reset is given.
func main() {
	reset := flag.Bool("reset", false, "rotate the password of an existing admin account")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Admin{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	email := strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", "admin@example.com")))
	password := getEnv("ADMIN_PASSWORD", "admin123")
	role := getEnv("ADMIN_ROLE", "admin")

	adminRepo := repository.NewAdminRepository(gormDB)
	ctx := context.Background()

	existing, err := adminRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !*reset {
			log.Printf("Admin with email %s already exists, nothing to do (use -reset to rotate the password)", email)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		existing.PasswordHash = string(hash)
		if err := adminRepo.Update(ctx, existing); err != nil {
			log.Fatalf("Failed to rotate password: %v", err)
		}
		log.Printf("Password rotated for admin %s", email)

	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		admin := &model.Admin{
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
		}
		if err := adminRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Admin created: %s (role %s)", admin.Email, admin.Role)
		log.Printf("Please change the default password after first login")

	default:
		log.Fatalf("Failed to look up admin: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
