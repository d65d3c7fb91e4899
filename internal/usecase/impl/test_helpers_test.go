package impl

import (
	"io"
	"log/slog"
	"time"

	"usersvc/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MinPasswordLength: 8,
			ResetTokenTTL:     24 * time.Hour,
		},
	}
}
