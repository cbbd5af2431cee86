package app

import (
	server "github.com/admin/tg-bots/ruz-bot/internal/adapters/primary/http"
	adminController "github.com/admin/tg-bots/ruz-bot/internal/adapters/primary/http/controllers/admin"
	ruzapiAdapter "github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/ruzapi"
	"github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/storage/redis"
	"github.com/admin/tg-bots/ruz-bot/internal/pkg/logger"
	jobScheduler "github.com/admin/tg-bots/ruz-bot/internal/services/jobs"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres  *pg.Config                    `envconfig:"POSTGRES"`
	Redis     *redisAdapter.Config          `envconfig:"REDIS"`
	Log       *logger.Config                `envconfig:"LOG"`
	Server    *server.Config                `envconfig:"APISERVER"`
	RuzAPI    *ruzapiAdapter.Config         `envconfig:"RUZ_API"`
	Refresher *jobScheduler.RefresherConfig `envconfig:"REFRESH"`
	Admin     *adminController.Config       `envconfig:"ADMIN"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
