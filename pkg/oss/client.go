// Package oss uploads rendered outputs to Alibaba Cloud object storage.
package oss

import (
	"context"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"go.uber.org/zap"

	"shortfactory/log"
	"shortfactory/pkg/errors"
)

type Client struct {
	client *oss.Client
	bucket string
}

func NewClient(accessKeyId, accessKeySecret, region, bucket string) *Client {
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyId, accessKeySecret)).
		WithRegion(region)
	return &Client{
		client: oss.NewClient(cfg),
		bucket: bucket,
	}
}

// UploadFile puts a local file under the given object key and returns the
// object key on success.
func (c *Client) UploadFile(ctx context.Context, key, localPath string) (string, error) {
	_, err := c.client.PutObjectFromFile(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(c.bucket),
		Key:    oss.Ptr(key),
	}, localPath)
	if err != nil {
		log.GetLogger().Error("oss upload error",
			zap.String("key", key), zap.String("path", localPath), zap.Error(err))
		return "", errors.Wrap(errors.CodeUploadFailed, "Upload failed", err)
	}
	log.GetLogger().Info("oss upload done", zap.String("key", key))
	return key, nil
}
