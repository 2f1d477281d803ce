package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/pkg/jwt"
)

type tokenGenDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	newID   func() string
	out     io.Writer
}

func defaultTokenGenDeps() tokenGenDeps {
	return tokenGenDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		newID:   func() string { return uuid.NewString() },
		out:     os.Stdout,
	}
}

func resolveUserID(input string, newID func() string) (string, error) {
	if input == "" {
		return newID(), nil
	}
	if _, err := uuid.Parse(input); err != nil {
		return "", fmt.Errorf("invalid --user-id %q: %w", input, err)
	}
	return input, nil
}

func runTokenGen(args []string, deps tokenGenDeps) error {
	def := defaultTokenGenDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.newID == nil {
		deps.newID = def.newID
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("token-gen", flag.ContinueOnError)
	userIDFlag := fs.String("user-id", "", "subject UUID (random when empty)")
	usernameFlag := fs.String("username", "coach", "username claim")
	emailFlag := fs.String("email", "", "email claim")
	staffFlag := fs.Bool("staff", false, "set is_staff")
	superFlag := fs.Bool("superuser", false, "set is_superuser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	userID, err := resolveUserID(*userIDFlag, deps.newID)
	if err != nil {
		return err
	}
	if *usernameFlag == "" {
		return fmt.Errorf("--username must not be empty")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	pair, err := svc.GenerateTokenPair(jwt.Identity{
		UserID:      userID,
		Username:    *usernameFlag,
		Email:       *emailFlag,
		IsStaff:     *staffFlag,
		IsSuperuser: *superFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to sign tokens: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Generated token pair")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", userID)
	_, _ = fmt.Fprintf(deps.out, "ACCESS_TOKEN=%s\n", pair.AccessToken)
	_, _ = fmt.Fprintf(deps.out, "REFRESH_TOKEN=%s\n", pair.RefreshToken)
	return nil
}

func main() {
	if err := runTokenGen(os.Args[1:], defaultTokenGenDeps()); err != nil {
		log.Fatal(err)
	}
}
