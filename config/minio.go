package config

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient is the shared object-storage client for entry images.
var MinioClient *minio.Client

func InitMinIO() {
	var err error
	MinioClient, err = minio.New(Cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(Cfg.Minio.AccessKey, Cfg.Minio.SecretKey, ""),
		Secure: Cfg.Minio.UseSSL,
	})
	if err != nil {
		Log.Fatal().Err(err).Msg("minio connect failed")
	}

	exists, err := MinioClient.BucketExists(Ctx, Cfg.Minio.Bucket)
	if err != nil {
		Log.Fatal().Err(err).Msg("minio bucket check failed")
	}
	if !exists {
		if err := MinioClient.MakeBucket(Ctx, Cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			Log.Fatal().Err(err).Str("bucket", Cfg.Minio.Bucket).Msg("minio bucket create failed")
		}
	}

	Log.Info().Str("endpoint", Cfg.Minio.Endpoint).Msg("minio ready")
}

// PublicObjectURL builds the URL handed to browsers for a stored object.
// The SDK talks to the internal endpoint; clients go through the public base.
func PublicObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", Cfg.Minio.PublicURL, Cfg.Minio.Bucket, objectName)
}
