package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Archiver 将序列化后的 JSON 文档写入对象存储
type Archiver struct {
	client *minio.Client
	bucket string
}

func NewArchiver(client *minio.Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

// NewDefaultArchiver 使用全局客户端与归档桶
func NewDefaultArchiver() *Archiver {
	return NewArchiver(Client, ArchiveBucket)
}

// PutJSON 上传一个 JSON 对象
func (s *Archiver) PutJSON(ctx context.Context, objectName string, payload []byte) error {
	if s.client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", objectName, err)
	}
	return nil
}
