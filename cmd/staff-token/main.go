// Command staff-token signs a bearer token for the order dashboard.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	staffID := flag.String("staff", "", "staff member the token is issued to")
	configPath := flag.String("config", "config/local.yaml", "path to the config file")
	flag.Parse()

	_ = godotenv.Load()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		*configPath = env
	}

	if *staffID == "" {
		slog.Error("missing -staff")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := middleware.NewStaffToken([]byte(cfg.Security.JWTKey), *staffID, cfg.Security.TokenTTL)
	if err != nil {
		slog.Error("failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(token)
}
