package history

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/history/repository"
	"github.com/smallbiznis/backoffice/internal/history/service"
	"github.com/smallbiznis/backoffice/internal/history/store"
	"go.uber.org/fx"
)

var Module = fx.Module("history.service",
	fx.Provide(NewRedisClient),
	fx.Provide(store.Provide),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}
