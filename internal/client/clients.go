package client

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type Clients interface {
	AuthClient() AuthClient
	StorageClient() StorageClient
	CacheClient() CacheClient
	// RabbitMQClient is nil when RabbitMQ was unreachable at startup.
	RabbitMQClient() RabbitClient
	Close() error
}

type clients struct {
	authClient    AuthClient
	storageClient StorageClient
	cacheClient   CacheClient
	rabbitClient  RabbitClient
}

func (c clients) AuthClient() AuthClient {
	return c.authClient
}

func (c clients) StorageClient() StorageClient {
	return c.storageClient
}

func (c clients) CacheClient() CacheClient {
	return c.cacheClient
}

func (c clients) RabbitMQClient() RabbitClient {
	return c.rabbitClient
}

func (c clients) Close() error {
	if c.rabbitClient != nil {
		return c.rabbitClient.Close()
	}
	return nil
}

func NewClients(cfg dto.Config) Clients {
	ctx := context.Background()

	decodedFirebaseKey, err := cfg.DecodeFirebaseKey()
	if err != nil {
		logrus.Panic(err)
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.FirebaseStorageBucket},
		option.WithCredentialsJSON(decodedFirebaseKey))
	if err != nil {
		logrus.Panic(err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logrus.Panic(err)
	}

	var storageClient StorageClient = unconfiguredStorageClient{}
	if cfg.FirebaseStorageBucket != "" {
		fbStorage, err := app.Storage(ctx)
		if err != nil {
			logrus.Panic(err)
		}
		bucket, err := fbStorage.DefaultBucket()
		if err != nil {
			logrus.Panic(err)
		}
		storageClient = newBucketStorageClient(bucket, cfg.FirebaseStorageBucket)
	} else {
		logrus.Warn("FIREBASE_STORAGE_BUCKET is not set, uploads will fail")
	}

	var rabbitClient RabbitClient
	if cfg.RabbitMQURL != "" {
		rabbitClient, err = NewRabbitMQClient(cfg)
		if err != nil {
			logrus.Errorf("Failed to connect to RabbitMQ: %v", err)
			rabbitClient = nil
		}
	}

	return &clients{
		authClient:    authClient,
		storageClient: storageClient,
		cacheClient:   NewCacheClient(cfg.RedisURL),
		rabbitClient:  rabbitClient,
	}
}
