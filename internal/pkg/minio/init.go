package minio

import (
	"DigitalOrganisms/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// ArchiveBucket 调用日志归档桶
	ArchiveBucket string
)

// Init 初始化 MinIO 客户端并确保归档桶存在
func Init() error {
	cfg := config.Cfg.MinIO

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = EnsureBucket(ctx, client, cfg.ArchiveBucket); err != nil {
		return err
	}

	Client = client
	ArchiveBucket = cfg.ArchiveBucket
	log.Info("MinIO initialized successfully", "bucket", cfg.ArchiveBucket)
	return nil
}

// EnsureBucket 桶不存在时创建
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if exists {
		return nil
	}
	if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	log.Info("MinIO bucket created", "bucket", bucket)
	return nil
}
