package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/bellapacxx/bingo-engine/game"
	"github.com/bellapacxx/bingo-engine/utils/logger"
	"github.com/joho/godotenv"
)

// Config is everything the server reads from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	Game           game.Config
}

// Load reads .env (when present) and the environment, falling back to the
// production defaults for anything unset.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Infof("No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:           getEnv("PORT", "4000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		Game:           game.DefaultConfig(),
	}

	if v := os.Getenv("ENTRY_PRICES"); v != "" {
		cfg.Game.EntryPrices = parseIntList(v)
	}
	cfg.Game.MinPlayers = getEnvInt("MIN_PLAYERS", cfg.Game.MinPlayers)
	cfg.Game.MaxPlayers = getEnvInt("MAX_PLAYERS", cfg.Game.MaxPlayers)
	cfg.Game.CartelaSlots = getEnvInt("CARTELA_SLOTS", cfg.Game.CartelaSlots)
	if v := os.Getenv("WINNER_SHARE"); v != "" {
		if share, err := strconv.ParseFloat(v, 64); err == nil && share > 0 && share <= 1 {
			cfg.Game.WinnerShare = share
		} else {
			logger.Warnf("ignoring invalid WINNER_SHARE %q", v)
		}
	}
	if getEnv("CARD_VARIANT", "banded") == "open" {
		cfg.Game.CardVariant = game.Open100
	}
	if getEnv("WIN_VARIANT", "lines") == "fullhouse" {
		cfg.Game.WinVariant = game.FullHouse
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		logger.Warnf("ignoring invalid %s %q", key, v)
		return fallback
	}
	return n
}

func parseIntList(v string) []int {
	var out []int
	for _, part := range strings.Split(v, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
