package app

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	pgstore "github.com/gofiber/storage/postgres/v3"
	redisstore "github.com/gofiber/storage/redis/v3"

	"skillbridge/internal/config"
)

// newSessionStorage picks where sessions live. A nil storage makes the
// session store keep them in memory.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.SessionStorage {
	case config.StoragePostgres:
		fiberlog.Info("storing sessions in postgres")
		return pgstore.New(pgstore.Config{
			ConnectionURI: cfg.DatabaseUrl,
			Table:         "skillbridge_sessions",
		})
	case config.StorageRedis:
		fiberlog.Info("storing sessions in redis")
		return redisstore.New(redisstore.Config{
			URL: cfg.RedisUrl,
		})
	}
	return nil
}
