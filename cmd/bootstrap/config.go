package bootstrap

import (
	"log/slog"

	"stayhub/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
	),
)

func LoadConfig() (config.Config, error) {
	// .env is a local-development convenience; deployed environments set
	// real variables.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return config.LoadConfig()
}
