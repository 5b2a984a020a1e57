// Command cleanup wipes all Trackly data: tables, bucket, cache and queues.
// Development tool for resetting a local stack.
package main

import (
	"github.com/minio/minio-go/v7"

	"trackly-server/config"
)

func main() {
	config.Load()
	config.InitDB()
	config.InitRedis()
	config.InitMinIO()
	config.InitRabbitMQ()

	config.Log.Info().Msg("wiping all data")

	// Tables. Entries first so the FK check never trips.
	for _, table := range []string{"entries", "entities", "users"} {
		if err := config.DB.Exec("TRUNCATE TABLE " + table).Error; err != nil {
			config.Log.Warn().Err(err).Str("table", table).Msg("truncate failed")
		} else {
			config.Log.Info().Str("table", table).Msg("table cleared")
		}
	}

	// Bucket.
	objectsCh := make(chan minio.ObjectInfo)
	go func() {
		defer close(objectsCh)
		for object := range config.MinioClient.ListObjects(config.Ctx, config.Cfg.Minio.Bucket, minio.ListObjectsOptions{Recursive: true}) {
			objectsCh <- object
		}
	}()
	for err := range config.MinioClient.RemoveObjects(config.Ctx, config.Cfg.Minio.Bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		config.Log.Warn().Err(err.Err).Str("object", err.ObjectName).Msg("object delete failed")
	}
	config.Log.Info().Msg("bucket cleared")

	// Cache.
	config.RDB.FlushDB(config.Ctx)
	config.Log.Info().Msg("cache cleared")

	// Queues.
	if _, err := config.MQChannel.QueuePurge(config.LinkTitleQueue, false); err != nil {
		config.Log.Warn().Err(err).Msg("queue purge failed")
	}
	config.Log.Info().Msg("queues cleared")

	config.Log.Info().Msg("cleanup done")
}
