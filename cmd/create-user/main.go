// CLI tool to create a user with a bcrypt-hashed password and a fresh auth
// token. The user's profile and meals are created on first use of the API.
// Usage: go run ./cmd/create-user (from the repo root)
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// newUser is what the operator types in.
type newUser struct {
	Username string
	Email    string
	Password string
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	u, err := prompt(bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}
	authToken := uuid.New().String()

	var userID int
	err = conn.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @authToken) RETURNING id`,
		pgx.NamedArgs{"username": u.Username, "email": u.Email, "password": string(hash), "authToken": authToken},
	).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			fmt.Fprintf(os.Stderr, "Username or email already taken\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", u.Username)
	fmt.Printf("  Auth Token: %s\n", authToken)
}

// prompt reads username, email and password, one per line.
func prompt(r *bufio.Reader, w io.Writer) (newUser, error) {
	var u newUser
	fields := []struct {
		label string
		dst   *string
	}{
		{"Username", &u.Username},
		{"Email", &u.Email},
		{"Password", &u.Password},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s: ", f.label)
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return newUser{}, fmt.Errorf("read %s: %w", strings.ToLower(f.label), err)
		}
		*f.dst = strings.TrimSpace(line)
		if *f.dst == "" {
			return newUser{}, fmt.Errorf("%s is required", strings.ToLower(f.label))
		}
	}
	if !strings.Contains(u.Email, "@") {
		return newUser{}, fmt.Errorf("email %q looks invalid", u.Email)
	}
	if len(u.Password) < minPasswordLen {
		return newUser{}, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return u, nil
}
