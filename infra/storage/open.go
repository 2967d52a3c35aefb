package storage

import (
	"fmt"

	"itemshare/app/item"
	"itemshare/infra/postgres"
	"itemshare/infra/redis"
	"itemshare/pkg/aws"
	"itemshare/pkg/config"

	"go.uber.org/zap"
)

// Open returns the blob store selected by STORE_DRIVER and a function
// releasing its connections.
func Open(cfg *config.AppConfig) (item.BlobStore, func() error, error) {
	zap.L().Info("Opening item blob store", zap.String("driver", cfg.StoreDriver))

	switch cfg.StoreDriver {
	case config.StoreDriverMemory, "":
		zap.L().Warn("Using in-memory blob store, items are lost on restart")
		return item.NewMemoryBlobStore(), noClose, nil

	case config.StoreDriverPostgres:
		store, err := postgres.NewBlobStore(
			cfg.PostgresHost,
			cfg.PostgresDatabase,
			cfg.PostgresUsername,
			cfg.PostgresPassword,
			cfg.PostgresPort,
			cfg.PostgresSSLMode,
		)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.StoreDriverRedis:
		store, err := redis.NewBlobStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.StoreDriverS3:
		if cfg.AWSBucket == "" {
			return nil, nil, fmt.Errorf("AWS_BUCKET is required for the s3 store driver")
		}
		store := aws.NewS3Bucket(aws.Config{
			Endpoint:  cfg.AWSEndpoint,
			Bucket:    cfg.AWSBucket,
			Region:    cfg.AWSDefaultRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func noClose() error {
	return nil
}

// IsProcessLocal reports whether the driver keeps items inside the
// running process, so other binaries cannot see them.
func IsProcessLocal(driver string) bool {
	return driver == config.StoreDriverMemory || driver == ""
}
