package config

import (
	"context"

	"github.com/go-redis/redis/v8"
)

var RDB *redis.Client
var Ctx = context.Background()

func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     Cfg.Redis.Addr,
		Password: Cfg.Redis.Password,
		DB:       Cfg.Redis.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		Log.Fatal().Err(err).Msg("redis connect failed")
	}
	Log.Info().Str("addr", Cfg.Redis.Addr).Msg("redis ready")
}
